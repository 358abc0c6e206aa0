package spotify

import (
	"context"
	"fmt"

	"github.com/mager/moodify/config"
	"github.com/mager/moodify/moodify"
	"github.com/mager/moodify/recommend"
	spot "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

// SpotifyClient is the process-wide catalog handle.
type SpotifyClient struct {
	Client *spot.Client
	ID     string
	Secret string
}

// ProvideSpotify builds a client-credentials Spotify client. Tokens are
// fetched lazily and refreshed by the oauth2 transport.
func ProvideSpotify(cfg config.Config, log *zap.SugaredLogger) *SpotifyClient {
	log.Infow("setting up spotify client", "configured", cfg.SpotifyID != "" && cfg.SpotifySecret != "")

	creds := &clientcredentials.Config{
		ClientID:     cfg.SpotifyID,
		ClientSecret: cfg.SpotifySecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	return &SpotifyClient{
		Client: spot.New(creds.Client(context.Background())),
		ID:     cfg.SpotifyID,
		Secret: cfg.SpotifySecret,
	}
}

// Configured reports whether client credentials are set.
func (c *SpotifyClient) Configured() bool {
	return c.ID != "" && c.Secret != ""
}

// Search runs one track search page.
func (c *SpotifyClient) Search(ctx context.Context, query string, opts recommend.SearchOptions) ([]moodify.Track, error) {
	searchOpts := []spot.RequestOption{
		spot.Limit(opts.Limit),
		spot.Offset(opts.Offset),
	}
	if opts.Market != "" {
		searchOpts = append(searchOpts, spot.Market(opts.Market))
	}

	results, err := c.Client.Search(ctx, query, spot.SearchTypeTrack, searchOpts...)
	if err != nil {
		return nil, fmt.Errorf("spotify: search %q: %w", query, err)
	}
	if results.Tracks == nil {
		return nil, nil
	}

	tracks := make([]moodify.Track, 0, len(results.Tracks.Tracks))
	for _, item := range results.Tracks.Tracks {
		tracks = append(tracks, MapTrack(item))
	}
	return tracks, nil
}

var Options = ProvideSpotify
