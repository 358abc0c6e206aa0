package recommend

import (
	"strings"

	"github.com/mager/moodify/moodify"
)

// Refine keeps tracks whose primary artist matches the requested one,
// comparing case-insensitively in both directions so "Drake" matches
// "Drake & Future" and "Weeknd" matches "The Weeknd". If nothing matches,
// the input is returned unchanged.
func Refine(tracks []moodify.Track, artist *string) []moodify.Track {
	if artist == nil {
		return tracks
	}
	target := strings.ToLower(strings.TrimSpace(*artist))
	if target == "" {
		return tracks
	}

	var kept []moodify.Track
	for _, t := range tracks {
		name := strings.ToLower(strings.TrimSpace(t.ArtistName))
		if name == "" {
			continue
		}
		if strings.Contains(name, target) || strings.Contains(target, name) {
			kept = append(kept, t)
		}
	}

	if len(kept) == 0 {
		return tracks
	}
	return kept
}
