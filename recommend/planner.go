package recommend

import (
	"fmt"
	"strings"

	"github.com/mager/moodify/moodify"
)

// deepCutOffset is the second page requested for a known artist.
const deepCutOffset = 20

// Query is one planned catalog search.
type Query struct {
	Text   string
	Offset int
}

// Plan decides which searches to run.
//
// With a known artist the same artist-scoped query runs twice, at offset 0
// and at deepCutOffset, so the second call reaches past the top hits into
// deeper cuts through pagination rather than a bigger page. Without an
// artist, three mood/genre/context mixes steer results away from the same
// mainstream hits.
func Plan(intent moodify.Intent) []Query {
	if intent.Artist != nil {
		q := fmt.Sprintf("artist:%q", *intent.Artist)
		return []Query{
			{Text: q, Offset: 0},
			{Text: q, Offset: deepCutOffset},
		}
	}

	return []Query{
		{Text: joinWords(intent.Mood, intent.GenreHint, intent.Context)},
		{Text: joinWords(intent.Mood, intent.GenreHint, intent.Context, "underground")},
		{Text: joinWords(intent.GenreHint, intent.Mood, intent.Context, "indie")},
	}
}

func joinWords(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
