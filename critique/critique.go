// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package critique

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/fitlog/summary"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	ErrUnavailable = errors.New("AI critique is unavailable right now")
	ErrEmptyDay    = errors.New("nothing is logged for this day")
)

const systemInstruction = `You are a supportive sports scientist and nutritionist.
You review one day of a person's sleep, meals and training, given as JSON.
Answer in plain text using exactly these section headings, in this order:

SUMMARY: two or three sentences about the day as a whole.
POSITIVES:
- one bullet per thing done well
NEGATIVES:
- one bullet per concern
RECOMMENDATIONS:
- one bullet per concrete, actionable change
SCORE: N/10

Only comment on data that is present. Do not invent values.`

// Generator produces a text reply for a system instruction and a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("GenAI returned an empty reply")
	}
	return text, nil
}

// Service critiques exported days. A Service without a Generator reports
// every request as unavailable.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

func NewService(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Prompt renders the user prompt for one day.
func Prompt(doc summary.Export) (string, error) {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return fmt.Sprintf("Please critique my day %s.\n\n%s\n", doc.Date, body), nil
}

// Critique reviews doc. Upstream failures are logged and returned as
// ErrUnavailable.
func (s *Service) Critique(ctx context.Context, doc summary.Export) (Critique, error) {
	if doc.Empty() {
		return Critique{}, ErrEmptyDay
	}
	if s.gen == nil {
		return Critique{}, ErrUnavailable
	}

	prompt, err := Prompt(doc)
	if err != nil {
		return Critique{}, err
	}

	reply, err := s.gen.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		s.logger.Error("critique generation failed", zap.String("date", doc.Date), zap.Error(err))
		return Critique{}, ErrUnavailable
	}

	c := Parse(reply)
	if c.Summary == "" && c.Score == nil {
		s.logger.Warn("critique reply had no recognizable sections", zap.String("date", doc.Date))
	}
	return c, nil
}
