package recommend

import (
	"math"
	"sort"

	"github.com/mager/moodify/moodify"
)

// missingBPMDistance sorts tracks without a tempo estimate last.
const missingBPMDistance = math.MaxFloat64

// FilterByTempo picks the playlist in three passes, returning the first
// non-empty one:
//
//  1. strict: BPM inside the tier range
//  2. relaxed: BPM inside the range widened by relax on each side
//  3. proximity: every track, closest to the tier midpoint first
//
// The result is empty only when tracks is empty.
func FilterByTempo(tracks []moodify.EnrichedTrack, energy moodify.Energy, relax int) ([]moodify.EnrichedTrack, moodify.TempoMatch) {
	if len(tracks) == 0 {
		return []moodify.EnrichedTrack{}, moodify.TempoMatchNone
	}

	target := energy.Range()
	if strict := withinRange(tracks, target); len(strict) > 0 {
		return strict, moodify.TempoMatchStrict
	}
	if relaxed := withinRange(tracks, target.Widen(relax)); len(relaxed) > 0 {
		return relaxed, moodify.TempoMatchRelaxed
	}
	return byProximity(tracks, float64(target.Midpoint())), moodify.TempoMatchProximity
}

func withinRange(tracks []moodify.EnrichedTrack, r moodify.BPMRange) []moodify.EnrichedTrack {
	var out []moodify.EnrichedTrack
	for _, t := range tracks {
		if bpm := t.Features.BPM; bpm != nil && r.Contains(*bpm) {
			out = append(out, t)
		}
	}
	return out
}

func byProximity(tracks []moodify.EnrichedTrack, midpoint float64) []moodify.EnrichedTrack {
	out := make([]moodify.EnrichedTrack, len(tracks))
	copy(out, tracks)
	sort.SliceStable(out, func(i, j int) bool {
		return tempoDistance(out[i], midpoint) < tempoDistance(out[j], midpoint)
	})
	return out
}

func tempoDistance(t moodify.EnrichedTrack, midpoint float64) float64 {
	bpm := t.Features.BPM
	if bpm == nil || math.IsNaN(*bpm) {
		return missingBPMDistance
	}
	return math.Abs(*bpm - midpoint)
}
