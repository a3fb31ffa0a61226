package gemini

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/mindcredit/mindcredit-api/internal/config"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/platform/logger"
	"github.com/mindcredit/mindcredit-api/internal/scoring"
	"google.golang.org/genai"
)

// DefaultModel is used when the configuration leaves the model empty.
const DefaultModel = "gemini-2.0-flash"

//go:embed prompt.tmpl
var defaultPrompt string

// contentGenerator is the subset of *genai.Models used by RiskScorer.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// RiskScorer implements scoring.Scorer using Google's Gemini API.
type RiskScorer struct {
	logger         *slog.Logger
	models         contentGenerator
	model          string
	timeout        time.Duration
	promptTemplate *template.Template
}

var _ scoring.Scorer = (*RiskScorer)(nil)

// NewRiskScorer creates a RiskScorer backed by a Gemini API client.
func NewRiskScorer(ctx context.Context, log *slog.Logger, cfg config.ScoringConfig) (*RiskScorer, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", scoring.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", scoring.ErrInvalidConfig, err)
	}

	return newRiskScorer(log, client.Models, cfg.Model, cfg.Timeout)
}

func newRiskScorer(
	log *slog.Logger,
	models contentGenerator,
	model string,
	timeout time.Duration,
) (*RiskScorer, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if model == "" {
		model = DefaultModel
	}

	tmpl, err := template.New("risk_score").Parse(defaultPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", scoring.ErrInvalidConfig, err)
	}

	return &RiskScorer{
		logger:         log.With(slog.String("component", "gemini_risk_scorer")),
		models:         models,
		model:          model,
		timeout:        timeout,
		promptTemplate: tmpl,
	}, nil
}

// Score implements scoring.Scorer.
func (s *RiskScorer) Score(
	ctx context.Context,
	emotions []*domain.Emotion,
	thoughts []*domain.Thought,
	transactions []*domain.Transaction,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt, err := s.createPrompt(scoring.Summarize(emotions, thoughts, transactions))
	if err != nil {
		return 0, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		log.ErrorContext(ctx, "gemini call failed",
			slog.String("model", s.model),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return 0, err
	}

	score, err := parseResponse(resp)
	if err != nil {
		log.WarnContext(ctx, "unusable gemini response", slog.String("error", err.Error()))
		return 0, err
	}

	log.DebugContext(ctx, "risk score received",
		slog.Int("risk_score", score),
		slog.Duration("elapsed", time.Since(start)))
	return score, nil
}

// createPrompt renders the prompt template for a signal summary.
func (s *RiskScorer) createPrompt(summary scoring.Summary) (string, error) {
	var buf bytes.Buffer
	data := promptData{
		Summary:  summary,
		MinScore: domain.MinRiskScore,
		MaxScore: domain.MaxRiskScore,
	}
	if err := s.promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// parseResponse extracts the risk score from a model response.
func parseResponse(resp *genai.GenerateContentResponse) (int, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return 0, fmt.Errorf("%w: no candidates", scoring.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return 0, fmt.Errorf("%w: %w", scoring.ErrInvalidResponse, ErrContentBlocked)
	}

	text := stripFence(resp.Text())
	if text == "" {
		return 0, fmt.Errorf("%w: empty content", scoring.ErrInvalidResponse)
	}

	var parsed ResponseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return 0, fmt.Errorf("%w: failed to parse JSON response: %v", scoring.ErrInvalidResponse, err)
	}
	if parsed.RiskScore == nil {
		return 0, fmt.Errorf("%w: risk_score missing", scoring.ErrInvalidResponse)
	}
	return *parsed.RiskScore, nil
}

// stripFence removes a surrounding markdown code fence, if any.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
