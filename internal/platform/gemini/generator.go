package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/nahiid-dev/VoyageCraft/internal/config"
	"github.com/nahiid-dev/VoyageCraft/internal/domain"
	"github.com/nahiid-dev/VoyageCraft/internal/generation"
	"github.com/nahiid-dev/VoyageCraft/internal/platform/metrics"
)

// providerName labels metrics emitted by this adapter.
const providerName = "gemini"

// Compile-time assurance this adapter satisfies the generation port
var _ generation.Generator = (*Generator)(nil)

// Generator implements generation.Generator using Google's Gemini API.
// Each GenerateItinerary call is a single GenerateContent round trip with
// the response pinned to JSON output.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewGenerator creates a Gemini-backed generator from LLM configuration.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger.With("component", "gemini_generator"),
		client: client,
		model:  cfg.Model,
	}, nil
}

// GenerateItinerary asks Gemini for a structured itinerary and parses the
// candidate text into the domain shape. One attempt only: any failure is
// returned for the caller to record, never retried here.
func (g *Generator) GenerateItinerary(
	ctx context.Context,
	destination string,
	durationDays int,
) (*domain.Itinerary, error) {
	prompt := generation.BuildPrompt(destination, durationDays)

	g.logger.InfoContext(ctx, "calling Gemini API",
		"model", g.model,
		"destination", destination,
		"duration_days", durationDays)

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	metrics.ObserveGeneration(providerName, time.Since(start), err == nil)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrBackendFailure, err)
	}

	text, err := candidateText(resp)
	if err != nil {
		return nil, err
	}

	var itinerary domain.Itinerary
	if err := json.Unmarshal([]byte(text), &itinerary); err != nil {
		return nil, fmt.Errorf("%w: failed to parse generated content as JSON: %v",
			generation.ErrInvalidResponse, err)
	}

	if err := itinerary.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	g.logger.InfoContext(ctx, "Gemini API call succeeded", "days", len(itinerary.Days))
	return &itinerary, nil
}

// candidateText extracts the generated text from the first candidate,
// rejecting the degenerate response shapes the API can produce.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	text := ""
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", fmt.Errorf("%w: no text parts in response", generation.ErrInvalidResponse)
	}
	return text, nil
}
