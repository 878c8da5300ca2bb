package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/mager/moodscale/logger"
	"github.com/mager/moodscale/personality"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	resp openai.ChatCompletionResponse
	err  error
	reqs []openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func reply(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text}},
		},
	}
}

func TestPrompt(t *testing.T) {
	p := personality.Analyze([]string{"indie"})
	got := Prompt(p, []string{"Holocene – Bon Iver", "Motion Sickness – Phoebe Bridgers"})

	assert.Contains(t, got, "Myers-Briggs personality type: INFP\n")
	assert.Contains(t, got, "Openness 65.0, Conscientiousness 20.0, Extraversion 35.0, Agreeableness 35.0, Neuroticism 20.0\n")
	assert.Contains(t, got, "the last 2 songs")
	assert.Contains(t, got, "1. Holocene – Bon Iver\n2. Motion Sickness – Phoebe Bridgers\n")
	assert.Contains(t, got, "6-8 line personality assessment")
}

func TestPromptOmitsNeutralScores(t *testing.T) {
	p := personality.Analyze([]string{"polka"})
	got := Prompt(p, nil)

	assert.Contains(t, got, "type: INTJ")
	assert.NotContains(t, got, "Big Five")
}

func TestGenerate(t *testing.T) {
	log, logs := logger.NewTestLogger()
	fc := &fakeCompleter{resp: reply("  You are someone who...\n")}
	g := NewGenerator(log, fc, "")

	got, err := g.Generate(context.Background(), personality.Analyze([]string{"pop"}), []string{"Song – Artist"})
	require.NoError(t, err)
	assert.Equal(t, "You are someone who...", got)

	require.Len(t, fc.reqs, 1)
	req := fc.reqs[0]
	assert.Equal(t, openai.GPT4, req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "ESFJ")
	assert.Equal(t, 1, logs.FilterMessage("generated insight").Len())
}

func TestGenerateUnknownShortCircuits(t *testing.T) {
	log, _ := logger.NewTestLogger()
	fc := &fakeCompleter{}
	g := NewGenerator(log, fc, "gpt-4o")

	_, err := g.Generate(context.Background(), personality.Analyze(nil), []string{"Song – Artist"})
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Empty(t, fc.reqs)
}

func TestGenerateErrors(t *testing.T) {
	log, _ := logger.NewTestLogger()
	p := personality.Analyze([]string{"jazz"})

	_, err := NewGenerator(log, nil, "").Generate(context.Background(), p, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	boom := errors.New("429 too many requests")
	_, err = NewGenerator(log, &fakeCompleter{err: boom}, "").Generate(context.Background(), p, nil)
	assert.ErrorIs(t, err, boom)

	_, err = NewGenerator(log, &fakeCompleter{}, "").Generate(context.Background(), p, nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
