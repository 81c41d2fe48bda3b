// Copyright (c) 2026 Travelpack. All rights reserved.

package generative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// contentGenerator is the slice of [genai.Models] this package uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini calls a Google Gemini model.
type Gemini struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini API client for model. Each call is bounded by timeout.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("generative: failed to create gemini client: %w", err)
	}

	return newGemini(client.Models, model, timeout), nil
}

func newGemini(models contentGenerator, model string, timeout time.Duration) *Gemini {
	return &Gemini{models: models, model: model, timeout: timeout}
}

// Generate sends prompt as a single user turn and returns the reply text.
func (gemini *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if gemini.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gemini.timeout)
		defer cancel()
	}

	response, err := gemini.models.GenerateContent(ctx, gemini.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generative: gemini %s: %w", gemini.model, err)
	}

	text := strings.TrimSpace(response.Text())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
