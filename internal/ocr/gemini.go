// Package ocr extracts text from receipt images using the Gemini API.
package ocr

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const recognizePrompt = "Extract all visible text from this receipt image. " +
	"Return the text exactly as printed, one line per receipt line, " +
	"preserving amounts and currency symbols. Do not summarize or annotate."

// GeminiRecognizer performs text recognition on receipt images with a
// Gemini vision model.
type GeminiRecognizer struct {
	client *genai.Client
	model  string
}

// NewGeminiRecognizer creates a recognizer backed by the given model.
func NewGeminiRecognizer(ctx context.Context, apiKey, model string) (*GeminiRecognizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("ocr: create genai client: %w", err)
	}
	return &GeminiRecognizer{client: client, model: model}, nil
}

// RecognizeText sends the image to the model and returns the extracted text.
func (r *GeminiRecognizer) RecognizeText(ctx context.Context, mimeType string, data []byte) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: recognizePrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     data,
					},
				},
			},
		},
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("ocr: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("ocr: empty response from model")
	}
	return text, nil
}
