package spotify

import (
	spot "github.com/zmb3/spotify/v2"
)

// GetFirstArtist returns the first artist
func GetFirstArtist(artists []spot.SimpleArtist) string {
	if len(artists) == 0 {
		return "Various Artists"
	}

	return artists[0].Name
}

// FormatTrack renders a track as "Title – Artist".
func FormatTrack(t spot.SimpleTrack) string {
	return t.Name + " – " + GetFirstArtist(t.Artists)
}

// ArtistGenres collects the genre list of each artist, skipping artists that
// have none.
func ArtistGenres(artists []spot.FullArtist) [][]string {
	lists := make([][]string, 0, len(artists))
	for _, a := range artists {
		if len(a.Genres) == 0 {
			continue
		}
		lists = append(lists, a.Genres)
	}
	return lists
}

// ISRCs returns the distinct ISRCs of the given tracks, in order.
func ISRCs(tracks []spot.FullTrack) []string {
	seen := make(map[string]struct{}, len(tracks))
	var isrcs []string
	for _, t := range tracks {
		isrc, ok := t.ExternalIDs["isrc"]
		if !ok || isrc == "" {
			continue
		}
		if _, dup := seen[isrc]; dup {
			continue
		}
		seen[isrc] = struct{}{}
		isrcs = append(isrcs, isrc)
	}
	return isrcs
}
