package bootstrap

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/policy-claims-backend/config"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/evaluator"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/genai"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/retriever"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/retry"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/service"
)

// BuildPipeline wires the generation client, retriever and evaluator.
func BuildPipeline(ctx context.Context, cfg config.GeminiConfig, keywordsFile string, metrics *genai.Metrics) (*service.Pipeline, error) {
	clientCfg := genai.Config{
		URL:       cfg.URL,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Metrics:   metrics,
	}

	var client *genai.Client
	if cfg.APIKey == "" && cfg.UseADC {
		c, err := genai.NewWithDefaultCredentials(ctx, clientCfg)
		if err != nil {
			return nil, err
		}
		client = c
	} else {
		client = genai.New(clientCfg)
	}

	keywords, err := evaluator.LoadKeywords(keywordsFile)
	if err != nil {
		return nil, fmt.Errorf("classifier keywords: %w", err)
	}

	policy := retry.DefaultPolicy()
	policy.Attempts = cfg.RetryAttempts

	return service.NewPipeline(
		retriever.New(client, policy),
		evaluator.New(evaluator.NewKeywordClassifier(keywords)),
	), nil
}
