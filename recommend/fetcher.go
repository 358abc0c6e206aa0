package recommend

import (
	"context"

	"github.com/mager/moodify/moodify"
	"golang.org/x/sync/errgroup"
)

// Fetch runs the planned searches and merges them, dropping repeated track
// IDs. Searches run concurrently but are merged in plan order, so the first
// query to list a track wins. A failed search is logged and contributes
// nothing.
func (r *Recommender) Fetch(ctx context.Context, plan []Query) []moodify.Track {
	pages := make([][]moodify.Track, len(plan))

	var g errgroup.Group
	g.SetLimit(r.opts.FetchConcurrency)
	for i, q := range plan {
		g.Go(func() error {
			tracks, err := r.catalog.Search(ctx, q.Text, SearchOptions{
				Market: r.opts.Market,
				Limit:  r.opts.PageSize,
				Offset: q.Offset,
			})
			if err != nil {
				r.log.Warnw("catalog search failed, skipping query", "query", q.Text, "offset", q.Offset, "err", err)
				r.metrics.CatalogQueryFailed()
				return nil
			}
			if len(tracks) > r.opts.PageSize {
				tracks = tracks[:r.opts.PageSize]
			}
			pages[i] = tracks
			return nil
		})
	}
	_ = g.Wait()

	return dedupe(pages)
}

func dedupe(pages [][]moodify.Track) []moodify.Track {
	seen := make(map[string]struct{})
	var out []moodify.Track
	for _, page := range pages {
		for _, t := range page {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
