package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nahiid-dev/VoyageCraft/internal/config"
	"github.com/nahiid-dev/VoyageCraft/internal/domain"
	"github.com/nahiid-dev/VoyageCraft/internal/generation"
	"github.com/nahiid-dev/VoyageCraft/internal/platform/metrics"
)

// providerName labels metrics emitted by this adapter.
const providerName = "openai"

// defaultBaseURL is the OpenAI API endpoint; any OpenAI-compatible gateway
// works through the base_url config override.
const defaultBaseURL = "https://api.openai.com/v1"

// Compile-time assurance this adapter satisfies the generation port
var _ generation.Generator = (*Generator)(nil)

// Generator implements generation.Generator against the Chat Completions
// API with JSON mode enabled, so the model answers with a parseable object
// and no prose wrapper.
type Generator struct {
	logger *slog.Logger
	apiKey string
	base   string
	model  string
	client *http.Client
}

// NewGenerator creates an OpenAI-backed generator from LLM configuration.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	base := cfg.OpenAIBaseURL
	if base == "" {
		base = defaultBaseURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Generator{
		logger: logger.With("component", "openai_generator"),
		apiKey: cfg.OpenAIAPIKey,
		base:   strings.TrimRight(base, "/"),
		model:  cfg.Model,
		client: &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateItinerary sends one chat completion request and parses the reply
// into the domain itinerary shape. A non-success status fails with
// ErrBackendFailure carrying the backend's diagnostic body; a success
// response without usable content fails with ErrInvalidResponse.
func (g *Generator) GenerateItinerary(
	ctx context.Context,
	destination string,
	durationDays int,
) (*domain.Itinerary, error) {
	reqBody := chatRequest{
		Model:    g.model,
		Messages: []chatMessage{{Role: "user", Content: generation.BuildPrompt(destination, durationDays)}},
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.base+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	g.logger.InfoContext(ctx, "calling chat completions API",
		"model", g.model,
		"destination", destination,
		"duration_days", durationDays)

	start := time.Now()
	resp, err := g.client.Do(req)
	metrics.ObserveGeneration(providerName, time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrBackendFailure, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			g.logger.Warn("failed to close backend response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		diagnostic, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", generation.ErrBackendFailure, resp.StatusCode, diagnostic)
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: no generated content in response", generation.ErrInvalidResponse)
	}

	var itinerary domain.Itinerary
	if err := json.Unmarshal([]byte(envelope.Choices[0].Message.Content), &itinerary); err != nil {
		return nil, fmt.Errorf("%w: failed to parse generated content as JSON: %v",
			generation.ErrInvalidResponse, err)
	}

	if err := itinerary.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	g.logger.InfoContext(ctx, "chat completions call succeeded", "days", len(itinerary.Days))
	return &itinerary, nil
}
