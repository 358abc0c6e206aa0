package recommend

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/mager/moodify/llm"
	"github.com/mager/moodify/moodify"
)

const featureSystemPrompt = `You estimate audio features of songs from their title and artist.
For every song in the input list, in the same order, estimate:
- bpm: tempo in beats per minute (number)
- energy: perceived intensity from 0.0 to 1.0
- valence: musical positiveness from 0.0 to 1.0
Reply with ONLY a JSON array with exactly one {"bpm": number, "energy": number, "valence": number} object per input song. No explanations, no markdown.`

type featurePromptTrack struct {
	N      int    `json:"n"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// featureReply is one element of the model's strict array answer.
type featureReply struct {
	BPM     estimatedBPM `json:"bpm"`
	Energy  *float64     `json:"energy"`
	Valence *float64     `json:"valence"`
}

// estimatedBPM accepts any JSON value and keeps it only if it is a positive number.
type estimatedBPM struct {
	value *float64
}

func (b *estimatedBPM) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil && f > 0 {
		b.value = &f
	}
	return nil
}

// errCountMismatch is returned when the model answers for a different number of tracks.
var errCountMismatch = errors.New("feature count does not match track count")

// EstimateFeatures asks the model for tempo, energy and valence for each
// track, using the tier's BPM range as guidance. The result always has one
// entry per track in input order. Any failure, including a reply with the
// wrong length, gives every track the tier's fallback features.
func (r *Recommender) EstimateFeatures(ctx context.Context, tracks []moodify.Track, mood string, energy moodify.Energy) []moodify.Features {
	if len(tracks) == 0 {
		return []moodify.Features{}
	}

	features, err := r.estimate(ctx, tracks, mood, energy)
	if err != nil {
		r.log.Warnw("feature estimation failed, using tier defaults", "energy", energy, "tracks", len(tracks), "err", err)
		r.metrics.Fallback("features")
		return fallbackFeatures(len(tracks), energy)
	}
	return features
}

func (r *Recommender) estimate(ctx context.Context, tracks []moodify.Track, mood string, energy moodify.Energy) ([]moodify.Features, error) {
	prompt, err := featurePrompt(tracks, mood, energy)
	if err != nil {
		return nil, err
	}

	raw, err := r.lm.Complete(ctx, featureSystemPrompt, prompt, r.opts.FeatureTemperature)
	if err != nil {
		return nil, err
	}
	return parseFeatures(raw, len(tracks))
}

func featurePrompt(tracks []moodify.Track, mood string, energy moodify.Energy) (string, error) {
	list := make([]featurePromptTrack, len(tracks))
	for i, t := range tracks {
		list[i] = featurePromptTrack{N: i + 1, Title: t.Title, Artist: t.ArtistName}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("marshal feature prompt: %w", err)
	}

	r := energy.Range()
	return fmt.Sprintf("Listener mood: %s\nTarget energy: %s (typically %d-%d BPM)\nSongs (%d):\n%s",
		mood, energy, r.Min, r.Max, len(tracks), b), nil
}

func parseFeatures(raw string, want int) ([]moodify.Features, error) {
	var replies []featureReply
	if err := llm.DecodeJSON(raw, &replies); err != nil {
		return nil, err
	}
	if len(replies) != want {
		return nil, fmt.Errorf("%w: got %d, want %d", errCountMismatch, len(replies), want)
	}

	out := make([]moodify.Features, len(replies))
	for i, rep := range replies {
		if rep.Energy == nil || rep.Valence == nil {
			return nil, &llm.ParseError{Input: raw, Err: fmt.Errorf("track %d: missing energy or valence", i+1)}
		}
		out[i] = moodify.Features{
			BPM:     rep.BPM.value,
			Energy:  clampUnit(*rep.Energy),
			Valence: clampUnit(*rep.Valence),
		}
	}
	return out, nil
}

func fallbackFeatures(n int, energy moodify.Energy) []moodify.Features {
	out := make([]moodify.Features, n)
	for i := range out {
		out[i] = moodify.FallbackFeatures(energy)
	}
	return out
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
