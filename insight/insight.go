// Package insight asks a chat-completion model for a short personality
// narrative. The returned text is passed through untouched.
package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mager/moodscale/config"
	"github.com/mager/moodscale/personality"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var (
	// ErrInsufficientData is returned for an Unknown type; no request is made.
	ErrInsufficientData = errors.New("not enough listening data for an insight")
	// ErrNotConfigured is returned when no API key was provided.
	ErrNotConfigured = errors.New("insight generator is not configured")
	// ErrEmptyResponse is returned when the model sends back no choices.
	ErrEmptyResponse = errors.New("empty completion")
)

const systemPrompt = "You are a psychological profiler skilled in behavioral and music-based personality assessment."

// Completer is the subset of the OpenAI client used here.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Generator struct {
	log    *zap.SugaredLogger
	client Completer
	model  string
}

func NewGenerator(log *zap.SugaredLogger, client Completer, model string) *Generator {
	if model == "" {
		model = openai.GPT4
	}
	return &Generator{log: log, client: client, model: model}
}

// Configured reports whether Generate can reach a model.
func (g *Generator) Configured() bool {
	return g.client != nil
}

// Prompt renders the user message for a profile and its recent tracks.
func Prompt(p personality.Profile, tracks []string) string {
	var b strings.Builder

	b.WriteString("You are a psychologist with expertise in personality and music psychology.\n")
	fmt.Fprintf(&b, "A person has the Myers-Briggs personality type: %s\n", p.MBTI)

	if p.Ocean.Status == personality.Scored {
		b.WriteString("Their Big Five scores on a 20-80 scale are:")
		for i, pt := range p.Ocean.Radar() {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, " %s %.1f", pt.Trait, pt.Value)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Here are the last %d songs this person has listened to:\n", len(tracks))
	for i, t := range tracks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}

	b.WriteString("Based on the MBTI type and the songs, write a 6-8 line personality assessment. ")
	b.WriteString("Focus on emotional depth, introspective qualities, thinking style, and social preferences. ")
	b.WriteString(`Write it in second person ("You are someone who...").`)

	return b.String()
}

// Generate returns the model's narrative for the profile.
func (g *Generator) Generate(ctx context.Context, p personality.Profile, tracks []string) (string, error) {
	if !p.MBTI.Known() {
		return "", ErrInsufficientData
	}
	if g.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(p, tracks)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	g.log.Infow("generated insight",
		"mbti", p.MBTI.String(),
		"model", g.model,
		"total_tokens", resp.Usage.TotalTokens,
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ProvideGenerator uses the OpenAI API when a key is configured.
func ProvideGenerator(cfg config.Config, log *zap.SugaredLogger) *Generator {
	if cfg.OpenAIAPIKey == "" {
		log.Warn("no openai api key, insights are disabled")
		return NewGenerator(log, nil, cfg.OpenAIModel)
	}
	return NewGenerator(log, openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel)
}

var Options = ProvideGenerator
