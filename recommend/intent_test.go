package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/mager/moodify/moodify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIntent(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		replyErr  error
		want      moodify.Intent
		wantWarns int
	}{
		{
			name:  "artist detected",
			reply: `{"artist": "Drake", "mood": "sad", "context": "late night", "energy": "low", "genre_hint": "hip hop"}`,
			want:  moodify.Intent{Artist: strp("Drake"), Mood: "sad", Context: "late night", Energy: moodify.EnergyLow, GenreHint: "hip hop"},
		},
		{
			name:  "fenced reply",
			reply: "```json\n{\"artist\": null, \"mood\": \"chill\", \"context\": \"drive\", \"energy\": \"medium\", \"genre_hint\": \"lofi\"}\n```",
			want:  moodify.Intent{Mood: "chill", Context: "drive", Energy: moodify.EnergyMedium, GenreHint: "lofi"},
		},
		{
			name:  "null token artist",
			reply: `{"artist": "null", "mood": "happy", "context": "party", "energy": "high", "genre_hint": "dance"}`,
			want:  moodify.Intent{Mood: "happy", Context: "party", Energy: moodify.EnergyHigh, GenreHint: "dance"},
		},
		{
			name:  "none token artist",
			reply: `{"artist": "None", "mood": "focus", "context": "study", "energy": "low", "genre_hint": "ambient"}`,
			want:  moodify.Intent{Mood: "focus", Context: "study", Energy: moodify.EnergyLow, GenreHint: "ambient"},
		},
		{
			name:  "empty artist",
			reply: `{"artist": "", "mood": "focus", "context": "study", "energy": "low", "genre_hint": "ambient"}`,
			want:  moodify.Intent{Mood: "focus", Context: "study", Energy: moodify.EnergyLow, GenreHint: "ambient"},
		},
		{
			name:  "unknown energy coerced",
			reply: `{"artist": null, "mood": "angry", "context": "gym", "energy": "extreme", "genre_hint": "metal"}`,
			want:  moodify.Intent{Mood: "angry", Context: "gym", Energy: moodify.EnergyMedium, GenreHint: "metal"},
		},
		{
			name:  "blank strings take defaults",
			reply: `{"artist": null, "mood": " ", "context": "", "energy": "LOW", "genre_hint": ""}`,
			want:  moodify.Intent{Mood: "general", Context: "general", Energy: moodify.EnergyLow, GenreHint: "pop"},
		},
		{
			name:      "service failure",
			replyErr:  errors.New("connection refused"),
			want:      moodify.DefaultIntent(),
			wantWarns: 1,
		},
		{
			name:      "malformed reply",
			reply:     "I think they want sad songs",
			want:      moodify.DefaultIntent(),
			wantWarns: 1,
		},
		{
			name:      "unknown field",
			reply:     `{"artist": null, "mood": "sad", "context": "x", "energy": "low", "genre_hint": "pop", "tempo": 80}`,
			want:      moodify.DefaultIntent(),
			wantWarns: 1,
		},
		{
			name:      "missing field",
			reply:     `{"artist": null, "mood": "sad", "energy": "low", "genre_hint": "pop"}`,
			want:      moodify.DefaultIntent(),
			wantWarns: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lm := &fakeLM{intent: tt.reply, intentErr: tt.replyErr}
			r, recorded := newTestRecommender(&fakeCatalog{}, lm)

			got := r.ExtractIntent(context.Background(), "some request")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantWarns, recorded.FilterLevelExact(warnLevel).Len())

			calls := lm.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, intentSystemPrompt, calls[0].System)
			assert.Equal(t, "some request", calls[0].User)
			assert.Equal(t, float32(0), calls[0].Temperature)
		})
	}
}
