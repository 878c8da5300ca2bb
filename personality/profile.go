// Package personality derives an MBTI type and a Big-Five score vector from
// a listener's genres. Everything here is a pure function of its input and
// safe for concurrent use.
package personality

// Profile is the combined result for one genre list.
type Profile struct {
	Genres []string `json:"genres"`
	MBTI   MBTI     `json:"mbti"`
	Ocean  Ocean    `json:"ocean"`
}

// Analyze runs both models over the same genres.
func Analyze(genres []string) Profile {
	return Profile{
		Genres: genres,
		MBTI:   Classify(genres),
		Ocean:  Score(genres),
	}
}
