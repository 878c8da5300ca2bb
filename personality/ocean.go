package personality

import (
	"encoding/json"
	"math"

	"github.com/mager/moodscale/genre"
)

// Trait is one Big-Five dimension.
type Trait int

const (
	Openness Trait = iota
	Conscientiousness
	Extraversion
	Agreeableness
	Neuroticism
)

// Traits lists the dimensions in vector order.
var Traits = [5]Trait{Openness, Conscientiousness, Extraversion, Agreeableness, Neuroticism}

var traitNames = [5]string{"Openness", "Conscientiousness", "Extraversion", "Agreeableness", "Neuroticism"}

func (t Trait) String() string {
	if t < 0 || int(t) >= len(traitNames) {
		return "Trait(?)"
	}
	return traitNames[t]
}

// Weights are raw trait ratings on a 1-5 scale, in Traits order.
type Weights [5]int

var oceanWeights = map[string]Weights{
	"indie":      {4, 1, 2, 2, 1},
	"lo-fi":      {4, 1, 1, 2, 1},
	"classical":  {5, 4, 1, 3, 1},
	"jazz":       {5, 3, 2, 3, 1},
	"alt rock":   {4, 2, 3, 2, 2},
	"rock":       {3, 2, 4, 2, 2},
	"metal":      {2, 2, 4, 1, 3},
	"hip hop":    {2, 2, 4, 2, 2},
	"trap":       {2, 1, 4, 2, 3},
	"pop":        {3, 3, 4, 3, 2},
	"dance pop":  {2, 3, 5, 3, 1},
	"edm":        {3, 2, 5, 2, 1},
	"r&b":        {3, 2, 3, 4, 2},
	"soul":       {4, 2, 3, 4, 1},
	"folk":       {4, 2, 2, 4, 1},
	"ambient":    {4, 1, 1, 3, 1},
	"punk":       {2, 2, 4, 1, 3},
	"electropop": {3, 3, 5, 3, 1},
	"k-pop":      {3, 3, 5, 3, 2},
}

const (
	rawMin    = 1.0
	rawMax    = 5.0
	scaledMin = 20.0
	scaledMax = 80.0

	neutralScore = 50.0
)

// Status tells a real score apart from the neutral fallback.
type Status int

const (
	InsufficientData Status = iota
	Scored
)

func (s Status) String() string {
	if s == Scored {
		return "scored"
	}
	return "insufficient_data"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Ocean is a Big-Five score vector on a 20-80 scale.
type Ocean struct {
	Scores  [5]float64 `json:"scores"`
	Status  Status     `json:"status"`
	Matched int        `json:"matched"`
}

// Score averages the weights of every recognized genre and rescales the
// means from [1,5] to [20,80], rounded to one decimal. With no recognized
// genre every trait is 50.
func Score(genres []string) Ocean {
	var sum [5]int
	hits := 0

	for _, g := range genres {
		w, ok := oceanWeights[genre.Normalize(g)]
		if !ok {
			continue
		}
		for i := range sum {
			sum[i] += w[i]
		}
		hits++
	}

	if hits == 0 {
		return Ocean{
			Scores: [5]float64{neutralScore, neutralScore, neutralScore, neutralScore, neutralScore},
			Status: InsufficientData,
		}
	}

	var scores [5]float64
	for i := range sum {
		mean := float64(sum[i]) / float64(hits)
		scores[i] = roundTenth(rescale(mean))
	}

	return Ocean{Scores: scores, Status: Scored, Matched: hits}
}

func rescale(v float64) float64 {
	return scaledMin + (v-rawMin)*(scaledMax-scaledMin)/(rawMax-rawMin)
}

func roundTenth(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

// Get returns the score of a single trait.
func (o Ocean) Get(t Trait) float64 {
	return o.Scores[t]
}

// RadarPoint is one spoke of a radar chart.
type RadarPoint struct {
	Trait string  `json:"trait"`
	Value float64 `json:"value"`
}

// Radar returns the scores as chart spokes in Traits order.
func (o Ocean) Radar() []RadarPoint {
	points := make([]RadarPoint, 0, len(Traits))
	for _, t := range Traits {
		points = append(points, RadarPoint{Trait: t.String(), Value: o.Scores[t]})
	}
	return points
}
