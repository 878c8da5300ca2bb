package personality

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		genres []string
		want   string
	}{
		{"indie and folk", []string{"indie", "folk"}, "INFP"},
		{"pop", []string{"pop"}, "ESFJ"},
		{"unknown genre ties everywhere", []string{"xyz-unknown-genre"}, "INTJ"},
		{"hip hop", []string{"hip hop"}, "ESTP"},
		{"rock", []string{"rock"}, "ESTP"},
		{"metal", []string{"metal"}, "ESTP"},
		{"classical", []string{"classical"}, "INTJ"},
		{"jazz", []string{"jazz"}, "INTJ"},
		{"r&b leaves N/S tied", []string{"r&b"}, "INFJ"},
		{"soul", []string{"soul"}, "INFJ"},
		{"alternative", []string{"alternative"}, "INTP"},
		{"pop against indie ties every axis", []string{"pop", "indie"}, "INFJ"},
		{"rap outvotes jazz", []string{"rap", "trap", "jazz"}, "ESTP"},
		{
			"mixed bag",
			[]string{"indie", "pop", "k-pop", "rock", "alternative", "edm"},
			// I=2 E=3, N=2 S=3, T=2 F=3, J=2 P=3
			"ESFP",
		},
		{"case folded", []string{"INDIE", "Folk"}, "INFP"},
		{"no trimming", []string{" indie"}, "INTJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.genres)
			assert.True(t, got.Known())
			assert.Equal(t, tt.want, got.Code())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestClassifyEmpty(t *testing.T) {
	for _, genres := range [][]string{nil, {}} {
		got := Classify(genres)
		assert.False(t, got.Known())
		assert.Equal(t, Unknown, got)
		assert.Equal(t, "Unknown", got.String())
		assert.Equal(t, "", got.Code())
		assert.Nil(t, got.Tally())
	}
}

func TestClassifyInvariance(t *testing.T) {
	genres := []string{"indie", "rock", "classical", "pop", "r&b", "trap"}
	want := Classify(genres)

	reversed := make([]string, len(genres))
	for i, g := range genres {
		reversed[len(genres)-1-i] = g
	}
	assert.Equal(t, want, Classify(reversed))

	shouted := []string{"INDIE", "Rock", "ClAsSiCaL", "POP", "R&B", "tRaP"}
	assert.Equal(t, want.Code(), Classify(shouted).Code())
	assert.Equal(t, want.Tally(), Classify(shouted).Tally())
}

func TestTally(t *testing.T) {
	got := Tally([]string{"indie", "folk", "soul", "unheard-of"})

	assert.Equal(t, TraitTally{
		Introvert: 3, Extravert: 0,
		Intuitive: 2, Sensor: 0,
		Thinker: 0, Feeler: 3,
		Judger: 1, Perceiver: 2,
	}, got)
}

func TestTallyNeverVotesBothSides(t *testing.T) {
	for g, letters := range genreLetters {
		seen := make(map[Letter]bool)
		for _, l := range letters {
			seen[l] = true
		}
		for _, a := range Axes {
			assert.False(t, seen[a.Left] && seen[a.Right], "%s votes both %c and %c", g, a.Left, a.Right)
		}
	}
}

func TestMBTIJSON(t *testing.T) {
	b, err := json.Marshal(Classify([]string{"pop"}))
	require.NoError(t, err)
	assert.JSONEq(t, `"ESFJ"`, string(b))

	b, err = json.Marshal(Unknown)
	require.NoError(t, err)
	assert.JSONEq(t, `"Unknown"`, string(b))

	b, err = json.Marshal(Classify([]string{"pop"}).Tally())
	require.NoError(t, err)
	assert.JSONEq(t, `{"I":0,"E":1,"N":0,"S":1,"T":0,"F":1,"J":1,"P":0}`, string(b))
}
