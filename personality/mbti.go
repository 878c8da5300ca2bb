package personality

import (
	"encoding/json"

	"github.com/mager/moodscale/genre"
)

// Letter is one pole of an MBTI axis.
type Letter byte

const (
	Introvert Letter = 'I'
	Extravert Letter = 'E'
	Intuitive Letter = 'N'
	Sensor    Letter = 'S'
	Thinker   Letter = 'T'
	Feeler    Letter = 'F'
	Judger    Letter = 'J'
	Perceiver Letter = 'P'
)

// Axis pairs two opposing letters. The left letter wins ties.
type Axis struct {
	Left, Right Letter
}

// Axes lists the four MBTI axes in code order.
var Axes = [4]Axis{
	{Introvert, Extravert},
	{Intuitive, Sensor},
	{Thinker, Feeler},
	{Judger, Perceiver},
}

var (
	introspective = []Letter{Introvert, Intuitive, Feeler, Perceiver}
	mainstream    = []Letter{Extravert, Sensor, Feeler, Judger}
	street        = []Letter{Extravert, Sensor, Thinker, Perceiver}
	cerebral      = []Letter{Introvert, Intuitive, Thinker, Judger}
	loud          = []Letter{Extravert, Sensor, Thinker, Perceiver}
	soulful       = []Letter{Introvert, Feeler, Judger}
	offbeat       = []Letter{Introvert, Intuitive, Thinker, Perceiver}
)

// genreLetters maps each known genre to the letters it votes for.
var genreLetters = map[string][]Letter{
	"indie":   introspective,
	"folk":    introspective,
	"ambient": introspective,
	"lo-fi":   introspective,

	"pop":        mainstream,
	"dance pop":  mainstream,
	"electropop": mainstream,
	"k-pop":      mainstream,

	"hip hop": street,
	"rap":     street,
	"trap":    street,

	"classical":    cerebral,
	"jazz":         cerebral,
	"instrumental": cerebral,

	"rock":  loud,
	"metal": loud,
	"punk":  loud,

	"r&b":  soulful,
	"soul": soulful,

	"alternative": offbeat,
}

// TraitTally counts the votes each letter received.
type TraitTally map[Letter]int

// MarshalJSON writes the tally keyed by letter, e.g. {"I":2,"E":0,...}.
func (t TraitTally) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, 8)
	for _, a := range Axes {
		out[string(a.Left)] = t[a.Left]
		out[string(a.Right)] = t[a.Right]
	}
	return json.Marshal(out)
}

// Tally sums the letter votes of every recognized genre.
// Unrecognized genres add nothing.
func Tally(genres []string) TraitTally {
	tally := make(TraitTally, 8)
	for _, a := range Axes {
		tally[a.Left] = 0
		tally[a.Right] = 0
	}
	for _, g := range genres {
		for _, l := range genreLetters[genre.Normalize(g)] {
			tally[l]++
		}
	}
	return tally
}

// MBTI is a classified type. The zero value is Unknown.
type MBTI struct {
	code  string
	tally TraitTally
}

// Unknown is returned for an empty genre list.
var Unknown = MBTI{}

const unknownCode = "Unknown"

// Classify maps a genre list to a four-letter type. Each axis goes to the
// letter with more votes, and to I, N, T or J on a tie.
func Classify(genres []string) MBTI {
	if len(genres) == 0 {
		return Unknown
	}

	tally := Tally(genres)

	code := make([]byte, 0, len(Axes))
	for _, a := range Axes {
		if tally[a.Left] >= tally[a.Right] {
			code = append(code, byte(a.Left))
		} else {
			code = append(code, byte(a.Right))
		}
	}

	return MBTI{code: string(code), tally: tally}
}

// Known reports whether the type was derived from at least one genre.
func (m MBTI) Known() bool {
	return m.code != ""
}

// Code returns the four-letter code, or "" for Unknown.
func (m MBTI) Code() string {
	return m.code
}

// Tally returns the votes behind the type, or nil for Unknown.
func (m MBTI) Tally() TraitTally {
	return m.tally
}

func (m MBTI) String() string {
	if !m.Known() {
		return unknownCode
	}
	return m.code
}

func (m MBTI) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
