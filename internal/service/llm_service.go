package service

import (
	"context"
	"fmt"
	"strings"

	"scholarmatch/internal/models"
	"scholarmatch/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// LLMService wraps the GigaChat client behind the Generator contract used
// by the chat responder. Missing credentials or a failed client setup
// leave the service in the unavailable state instead of failing startup;
// the chat responder then always takes the fallback path.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func systemInstruction() string {
	return `You are a helpful education advisor with access to a catalog of scholarships and universities.
Answer questions using only the catalog records provided in the prompt.
Include specific details such as amounts, providers, countries and eligibility when relevant.
Format amounts as currency (e.g. $50,000). Be concise but informative.
If the provided records do not answer the question, say so instead of inventing data.`
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) *LLMService {
	s := &LLMService{logger: logger}

	if cfg.APIKey == "" {
		logger.Warn("GigaChat API key not configured, generation disabled")
		return s
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(context.Background(), cfg.APIKey, opts...)
	if err != nil {
		logger.Warn("Failed to create GigaChat client, generation disabled", zap.Error(err))
		return s
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = systemInstruction()
	model.Temperature = 0.7

	s.client = client
	s.model = model
	logger.Info("GigaChat client initialized")
	return s
}

// Available reports whether the generation collaborator is configured.
func (s *LLMService) Available() bool { return s.model != nil }

// Generate produces prose for a prompt. Any failure, including an
// unconfigured client, surfaces as models.ErrGenerationUnavailable so the
// caller can fall back deterministically.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.model == nil {
		return "", models.ErrGenerationUnavailable
	}

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}
	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrGenerationUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", models.ErrGenerationUnavailable)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: blank response", models.ErrGenerationUnavailable)
	}
	return text, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
