package chatter

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/BarryMolina/mathsfun-sub001/internal/config"
	"github.com/BarryMolina/mathsfun-sub001/internal/quiz"
)

const systemPrompt = `You are a warm, upbeat coach for a kid practicing addition.
Given a short quiz summary, reply with one or two encouraging sentences.
Mention something specific from the numbers. Keep it under 40 words.
No markdown, no emoji spam (one emoji at most).`

// Chatter asks an OpenAI-compatible chat model for a short piece of
// post-quiz commentary. Works against x.ai's Grok endpoint by default.
type Chatter struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

// New builds a Chatter from config. Returns nil when no API key is set;
// callers treat a nil Chatter as disabled.
func New(cfg config.ChatterConfig, log *zap.Logger) *Chatter {
	if !cfg.Enabled() {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Chatter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		log:    log,
	}
}

// Encourage returns a model-written comment on the finished quiz.
func (c *Chatter) Encourage(ctx context.Context, s quiz.Summary) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describeSummary(s)},
		},
		MaxTokens:   120,
		Temperature: 0.8,
	})
	if err != nil {
		c.log.Warn("chat completion failed", zap.Error(err))
		return "", fmt.Errorf("requesting commentary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func describeSummary(s quiz.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Problems presented: %d\n", s.Produced)
	fmt.Fprintf(&b, "Answers attempted: %d\n", s.Attempted)
	fmt.Fprintf(&b, "Correct: %d\n", s.Correct)
	fmt.Fprintf(&b, "Skipped: %d\n", s.Skipped())
	fmt.Fprintf(&b, "Time: %s\n", quiz.FormatDuration(s.Elapsed))
	if s.Attempted > 0 {
		fmt.Fprintf(&b, "Accuracy: %.1f%%\n", s.Accuracy())
	}
	if s.Completed() {
		b.WriteString("The kid finished the whole set.\n")
	} else {
		b.WriteString("The kid stopped before the end.\n")
	}
	return b.String()
}
