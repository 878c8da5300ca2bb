// Package moodscale holds the types the API returns.
package moodscale

import "github.com/mager/moodscale/personality"

// Profile is everything the API knows about one listener for one request.
type Profile struct {
	DisplayName string `json:"display_name"`

	// Genres is the ranked genre list the scores were computed from.
	// Example: ["indie", "folk", "ambient"]
	Genres []string `json:"genres"`
	// GenreSource is "spotify" or "musicbrainz".
	GenreSource string `json:"genre_source,omitempty"`

	// MBTI is a four-letter code, or "Unknown" when there were no genres.
	// Example: "INFP"
	MBTI personality.MBTI `json:"mbti"`
	// Tally is the per-letter vote count behind MBTI.
	Tally personality.TraitTally `json:"tally,omitempty"`

	// Ocean holds the Big Five scores in the order Openness,
	// Conscientiousness, Extraversion, Agreeableness, Neuroticism.
	// Range: 20 - 80, or 50 across the board with status "insufficient_data".
	Ocean personality.Ocean `json:"ocean"`
	// Radar is Ocean laid out as chart spokes.
	Radar []personality.RadarPoint `json:"radar"`

	// Tracks are recent plays formatted as "Title – Artist".
	Tracks []string `json:"tracks"`

	Insight      string `json:"insight,omitempty"`
	InsightError string `json:"insight_error,omitempty"`
}

// Stage names a step of building a Profile, reported to streaming clients.
type Stage string

const (
	StageFetching Stage = "fetching"
	StageScoring  Stage = "scoring"
	StageInsight  Stage = "insight"
	StageDone     Stage = "done"
)

// FromPersonality fills the score fields from a core profile.
func FromPersonality(p personality.Profile) Profile {
	return Profile{
		Genres: p.Genres,
		MBTI:   p.MBTI,
		Tally:  p.MBTI.Tally(),
		Ocean:  p.Ocean,
		Radar:  p.Ocean.Radar(),
	}
}
