// Package chat implements the MoneyMind financial assistant backed by
// Gemini models with quota-aware fallback.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	apperrors "moneymind/internal/errors"
	"moneymind/internal/logger"
)

// Snapshot is the budget context embedded into every assistant prompt.
type Snapshot struct {
	TotalSpent   float64 `json:"totalSpent"`
	MonthlyLimit float64 `json:"monthlyLimit"`
	Remaining    float64 `json:"remaining"`
}

// generator abstracts the model call so tests can stub it.
type generator interface {
	generate(ctx context.Context, model, prompt string) (string, error)
}

// Assistant answers budgeting questions using an ordered list of models.
// When a model reports quota exhaustion the assistant advances to the next
// model in the list; any other failure is returned immediately.
type Assistant struct {
	gen    generator
	models []string
}

// NewAssistant creates an assistant using the Gemini API. Models are tried
// in order, primary first.
func NewAssistant(ctx context.Context, apiKey string, models []string) (*Assistant, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("chat: create genai client: %w", err)
	}
	return &Assistant{gen: &geminiGenerator{client: client}, models: models}, nil
}

// Reply answers a user message in the context of their budget snapshot.
// Blank messages short-circuit without a model call.
func (a *Assistant) Reply(ctx context.Context, message string, snapshot Snapshot) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Message is required")
	}

	prompt := buildPrompt(message, snapshot)

	var lastErr error
	for _, model := range a.models {
		reply, err := a.gen.generate(ctx, model, prompt)
		if err == nil {
			return reply, nil
		}
		if !isQuotaError(err) {
			return "", apperrors.Wrap(apperrors.ErrChatUnavailable, err)
		}
		logger.Get().Warnw("chat model quota exhausted, trying fallback",
			"model", model,
		)
		lastErr = err
	}
	return "", apperrors.Wrap(apperrors.ErrChatUnavailable, lastErr)
}

func buildPrompt(message string, snapshot Snapshot) string {
	budgetJSON, _ := json.Marshal(snapshot)
	return "You are MoneyMind's friendly financial assistant. " +
		"Help the user understand their spending and make better budgeting decisions. " +
		"Keep answers short, practical, and encouraging.\n\n" +
		"The user's current budget snapshot:\n" + string(budgetJSON) + "\n\n" +
		"User: " + message
}

// isQuotaError reports whether the model call failed because of quota
// exhaustion, the only condition that justifies falling back.
func isQuotaError(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED"
}

type geminiGenerator struct {
	client *genai.Client
}

func (g *geminiGenerator) generate(ctx context.Context, model, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("chat: empty response from model %s", model)
	}
	return text, nil
}
