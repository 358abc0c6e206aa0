package moodify

import "strings"

// Result is the response for one recommendation request.
type Result struct {
	InputText string  `json:"input_text"`
	Artist    *string `json:"artist"`
	Mood      string  `json:"mood"`
	Context   string  `json:"context"`
	Energy    Energy  `json:"energy"`
	GenreHint string  `json:"genre_hint"`
	// DetectedContext is the mood and setting as one phrase, e.g. "sad late night".
	DetectedContext string `json:"detected_context"`
	// BPMRange is the display form of the tier's target window, e.g. "50-85 BPM".
	BPMRange   string     `json:"bpm_range"`
	TempoMatch TempoMatch `json:"tempo_match"`

	TotalRecommendations int                `json:"total_recommendations"`
	RecommendedTracks    []RecommendedTrack `json:"recommended_tracks"`
	Message              string             `json:"message,omitempty"`
}

type RecommendedTrack struct {
	SongName   string   `json:"song_name"`
	Artist     string   `json:"artist"`
	Album      string   `json:"album"`
	SpotifyURL string   `json:"spotify_url"`
	PreviewURL *string  `json:"preview_url"`
	BPM        *float64 `json:"bpm"`
	Energy     float64  `json:"energy"`
	Valence    float64  `json:"valence"`
}

// NewResult starts a Result from the request text and its intent.
func NewResult(text string, intent Intent) Result {
	return Result{
		InputText:         text,
		Artist:            intent.Artist,
		Mood:              intent.Mood,
		Context:           intent.Context,
		Energy:            intent.Energy,
		GenreHint:         intent.GenreHint,
		DetectedContext:   strings.Join(strings.Fields(intent.Mood+" "+intent.Context), " "),
		BPMRange:          intent.Energy.Range().String(),
		TempoMatch:        TempoMatchNone,
		RecommendedTracks: []RecommendedTrack{},
	}
}

// WithPlaylist fills the playlist from enriched tracks in order.
func (r Result) WithPlaylist(tracks []EnrichedTrack, match TempoMatch) Result {
	out := make([]RecommendedTrack, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, RecommendedTrack{
			SongName:   t.Title,
			Artist:     t.ArtistName,
			Album:      t.AlbumName,
			SpotifyURL: t.URL,
			PreviewURL: t.PreviewURL,
			BPM:        t.Features.BPM,
			Energy:     t.Features.Energy,
			Valence:    t.Features.Valence,
		})
	}
	r.RecommendedTracks = out
	r.TotalRecommendations = len(out)
	r.TempoMatch = match
	return r
}
