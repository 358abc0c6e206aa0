package spotify

import (
	spot "github.com/zmb3/spotify/v2"

	"github.com/mager/moodify/moodify"
)

// GetFirstArtist returns the first artist
func GetFirstArtist(artists []spot.SimpleArtist) string {
	if len(artists) == 0 {
		return "Various Artists"
	}

	return artists[0].Name
}

// MapTrack converts a search hit into a catalog track.
func MapTrack(t spot.FullTrack) moodify.Track {
	track := moodify.Track{
		ID:         string(t.ID),
		Title:      t.Name,
		ArtistName: GetFirstArtist(t.Artists),
		AlbumName:  t.Album.Name,
		URL:        t.ExternalURLs["spotify"],
	}
	if t.PreviewURL != "" {
		preview := t.PreviewURL
		track.PreviewURL = &preview
	}
	return track
}
