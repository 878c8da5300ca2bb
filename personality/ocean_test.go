package personality

import (
	"encoding/json"
	"testing"

	"github.com/mager/moodscale/genre"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		genres  []string
		want    [5]float64
		matched int
	}{
		{
			name:    "indie",
			genres:  []string{"indie"},
			want:    [5]float64{65, 20, 35, 35, 20},
			matched: 1,
		},
		{
			name:    "indie and classical",
			genres:  []string{"indie", "classical"},
			want:    [5]float64{72.5, 42.5, 27.5, 42.5, 20},
			matched: 2,
		},
		{
			name:    "unknown genres do not count",
			genres:  []string{"indie", "polka", "classical", "vaporwave"},
			want:    [5]float64{72.5, 42.5, 27.5, 42.5, 20},
			matched: 2,
		},
		{
			name:    "top of the scale",
			genres:  []string{"classical"},
			want:    [5]float64{80, 65, 20, 50, 20},
			matched: 1,
		},
		{
			// means (3, 7/3, 13/3, 7/3, 5/3)
			name:    "repeating thirds round to a tenth",
			genres:  []string{"rock", "pop", "edm"},
			want:    [5]float64{50, 40, 70, 40, 30},
			matched: 3,
		},
		{
			// means (2, 5/3, 4, 5/3, 8/3)
			name:    "inexact means",
			genres:  []string{"metal", "hip hop", "trap"},
			want:    [5]float64{35, 30, 65, 30, 45},
			matched: 3,
		},
		{
			name:    "duplicates count twice",
			genres:  []string{"indie", "indie", "classical"},
			want:    [5]float64{70, 35, 30, 40, 20},
			matched: 3,
		},
		{
			name:    "case folded",
			genres:  []string{"Alt Rock", "K-POP"},
			want:    [5]float64{57.5, 42.5, 65, 42.5, 35},
			matched: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.genres)
			assert.Equal(t, Scored, got.Status)
			assert.Equal(t, tt.matched, got.Matched)
			for i, want := range tt.want {
				assert.InDelta(t, want, got.Scores[i], 1e-9, Traits[i].String())
			}
		})
	}
}

func TestScoreInsufficientData(t *testing.T) {
	for _, genres := range [][]string{nil, {}, {"polka", "sea shanty"}} {
		got := Score(genres)
		assert.Equal(t, InsufficientData, got.Status)
		assert.Equal(t, 0, got.Matched)
		assert.Equal(t, [5]float64{50, 50, 50, 50, 50}, got.Scores)
	}
}

func TestScoreBounds(t *testing.T) {
	for g := range oceanWeights {
		got := Score([]string{g})
		for i, v := range got.Scores {
			assert.GreaterOrEqual(t, v, 20.0, "%s %s", g, Traits[i])
			assert.LessOrEqual(t, v, 80.0, "%s %s", g, Traits[i])
		}
	}
}

func TestScoreInvariance(t *testing.T) {
	genres := []string{"jazz", "trap", "folk", "electropop", "soul"}
	want := Score(genres)

	reversed := make([]string, len(genres))
	for i, g := range genres {
		reversed[len(genres)-1-i] = g
	}
	assert.Equal(t, want, Score(reversed))
	assert.Equal(t, want, Score([]string{"JAZZ", "Trap", "FoLk", "ElectroPop", "SOUL"}))
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 40.0, roundTenth(40.00000000000001))
	assert.Equal(t, 72.5, roundTenth(72.5))
	assert.Equal(t, 33.3, roundTenth(33.333333))
	assert.Equal(t, 0.2, roundTenth(0.25))
}

func TestWeightTable(t *testing.T) {
	assert.Len(t, oceanWeights, 19)
	for g, w := range oceanWeights {
		assert.Equal(t, g, genre.Normalize(g), "table keys are already case-folded")
		for _, v := range w {
			assert.GreaterOrEqual(t, v, 1, g)
			assert.LessOrEqual(t, v, 5, g)
		}
	}
}

func TestRadar(t *testing.T) {
	points := Score([]string{"indie"}).Radar()

	require.Len(t, points, 5)
	assert.Equal(t, RadarPoint{Trait: "Openness", Value: 65}, points[0])
	assert.Equal(t, RadarPoint{Trait: "Neuroticism", Value: 20}, points[4])
}

func TestOceanJSON(t *testing.T) {
	b, err := json.Marshal(Score(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"scores":[50,50,50,50,50],"status":"insufficient_data","matched":0}`, string(b))
}

func TestAnalyze(t *testing.T) {
	p := Analyze([]string{"indie", "folk"})

	assert.Equal(t, "INFP", p.MBTI.Code())
	assert.Equal(t, Scored, p.Ocean.Status)
	assert.Equal(t, []string{"indie", "folk"}, p.Genres)

	empty := Analyze(nil)
	assert.False(t, empty.MBTI.Known())
	assert.Equal(t, InsufficientData, empty.Ocean.Status)
}
