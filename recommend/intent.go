package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/mager/moodify/llm"
	"github.com/mager/moodify/moodify"
)

const intentTemperature = 0

const intentSystemPrompt = `You read short music requests and describe what the listener wants.
Reply with ONLY a JSON object with exactly these keys:
{"artist": string or null, "mood": string, "context": string, "energy": "low" | "medium" | "high", "genre_hint": string}
Rules:
- artist is a real performer named in the request, otherwise null. Never guess an artist.
- mood is one or two words, e.g. "sad", "happy", "chill", "romantic".
- context is the activity or setting, e.g. "night drive", "workout", "study", or "general".
- energy is the intensity the listener wants.
- genre_hint is the single closest genre, e.g. "hip hop", "lofi", "pop".
No explanations, no markdown.`

// intentReply is the strict wire shape of the model's intent answer.
type intentReply struct {
	Artist    *string `json:"artist"`
	Mood      *string `json:"mood"`
	Context   *string `json:"context"`
	Energy    *string `json:"energy"`
	GenreHint *string `json:"genre_hint"`
}

// ExtractIntent asks the model for a structured intent. It never fails: any
// upstream or decode problem yields moodify.DefaultIntent.
func (r *Recommender) ExtractIntent(ctx context.Context, text string) moodify.Intent {
	raw, err := r.lm.Complete(ctx, intentSystemPrompt, text, intentTemperature)
	if err != nil {
		r.log.Warnw("intent extraction failed, using default intent", "err", err)
		r.metrics.Fallback("intent")
		return moodify.DefaultIntent()
	}

	intent, err := parseIntent(raw)
	if err != nil {
		r.log.Warnw("intent reply rejected, using default intent", "err", err)
		r.metrics.Fallback("intent")
		return moodify.DefaultIntent()
	}
	return intent
}

func parseIntent(raw string) (moodify.Intent, error) {
	var reply intentReply
	if err := llm.DecodeJSON(raw, &reply); err != nil {
		return moodify.Intent{}, err
	}
	if reply.Mood == nil || reply.Context == nil || reply.Energy == nil || reply.GenreHint == nil {
		return moodify.Intent{}, &llm.ParseError{Input: raw, Err: errors.New("missing intent field")}
	}

	def := moodify.DefaultIntent()
	return moodify.Intent{
		Artist:    moodify.NormalizeArtist(reply.Artist),
		Mood:      orDefault(*reply.Mood, def.Mood),
		Context:   orDefault(*reply.Context, def.Context),
		Energy:    moodify.ParseEnergy(*reply.Energy),
		GenreHint: orDefault(*reply.GenreHint, def.GenreHint),
	}, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
