// Package gemini implements the generation.Generator interface against
// Google's Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/generation"
)

// Retry policy for Gemini API calls.
const (
	maxRetries       = 3
	baseDelaySeconds = 2
)

// promptTemplate asks for strict JSON so the response parses without any
// markdown stripping.
const promptTemplate = `You are a flashcard author. Create exactly %d flashcards about the topic %q.
Respond with a JSON array only, no prose and no code fences. Each element must be an object with
fields "question", "answer", and "difficulty" where difficulty is one of "Easy", "Medium", "Hard".`

// generatedCard is one element of the model's JSON response.
type generatedCard struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// Ensure GeminiGenerator implements generation.Generator interface
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new GeminiGenerator from LLM configuration.
// Returns generation.ErrInvalidConfig when the API key or model name is
// missing.
func NewGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// GenerateFlashcards implements generation.Generator.GenerateFlashcards.
func (g *GeminiGenerator) GenerateFlashcards(
	ctx context.Context,
	username, topic string,
	count int,
) ([]*domain.Flashcard, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, generation.ErrEmptyTopic
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1", generation.ErrInvalidConfig)
	}

	prompt := fmt.Sprintf(promptTemplate, count, topic)

	raw, err := g.callGeminiWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.parseResponse(ctx, raw, username, topic)
}

// callGeminiWithRetry calls the Gemini API with exponential backoff and
// jitter between retries for transient errors. Permanent errors (blocked
// content, malformed responses) are returned immediately.
func (g *GeminiGenerator) callGeminiWithRetry(ctx context.Context, prompt string) (string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.InfoContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1,
			"model", g.model)

		text, err := g.callGemini(ctx, prompt)
		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful", "attempt", attemptNum)
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * jitter in [0.5, 1.0)
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callGemini makes a single API call and extracts the response text.
func (g *GeminiGenerator) callGemini(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API call: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text parts in response", generation.ErrInvalidResponse)
	}
	return text, nil
}

// parseResponse converts the model's JSON payload into flashcard domain
// objects. Any invalid card fails the whole batch.
func (g *GeminiGenerator) parseResponse(
	ctx context.Context,
	raw, username, topic string,
) ([]*domain.Flashcard, error) {
	// Models occasionally wrap JSON in code fences despite instructions.
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var generated []generatedCard
	if err := json.Unmarshal([]byte(raw), &generated); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}
	if len(generated) == 0 {
		return nil, fmt.Errorf("%w: empty card list", generation.ErrInvalidResponse)
	}

	cards := make([]*domain.Flashcard, 0, len(generated))
	for i, gc := range generated {
		card, err := domain.NewFlashcard(
			username,
			gc.Question,
			gc.Answer,
			topic,
			domain.DifficultyLevel(gc.Difficulty),
			true,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: card %d invalid: %v",
				generation.ErrInvalidResponse, i, err)
		}
		cards = append(cards, card)
	}

	g.logger.DebugContext(ctx, "parsed generated flashcards",
		"count", len(cards),
		"topic", topic)
	return cards, nil
}
