package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tripforge/internal/config"
)

type ModelTier string

const (
	TierFast     ModelTier = "fast"
	TierStandard ModelTier = "standard"
)

type AIRequest struct {
	Tier            ModelTier
	Prompt          string
	Temperature     float32
	MaxOutputTokens int
	// ForceJSON asks for structured output. Providers without a native
	// JSON mode get explicit instructions appended and the response is
	// recovered with RecoverJSON.
	ForceJSON bool
}

type AIResponse struct {
	Content      string
	TokensUsed   int
	Model        string
	FinishReason string
}

type AIClientInterface interface {
	Generate(ctx context.Context, req AIRequest) (*AIResponse, error)
	Close() error
}

// providerClient is the raw, single-attempt provider call. GatewayClient
// layers credential checks, retry/backoff and JSON recovery on top.
type providerClient interface {
	generate(ctx context.Context, req AIRequest) (*AIResponse, error)
	nativeJSON() bool
	close() error
}

const jsonOnlyInstructions = "\n\nReturn pure JSON only. No code fences, no markdown, no prose before or after the JSON."

// GatewayClient is the provider-agnostic AI gateway. It holds only
// immutable configuration, so one instance may be shared across
// concurrent generation runs.
type GatewayClient struct {
	provider providerClient
	cfg      config.GatewayConfig
	log      *logrus.Logger
}

// NewAIClient builds the gateway for the configured provider. A missing
// API key is not a construction error; the first Generate call reports
// ErrMissingAPIKey instead, before any network attempt.
func NewAIClient(ctx context.Context, cfg config.GatewayConfig, log *logrus.Logger) (*GatewayClient, error) {
	gw := &GatewayClient{cfg: cfg, log: log}

	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return gw, nil
		}
		p, err := newGeminiClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		gw.provider = p
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return gw, nil
		}
		gw.provider = newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}

	return gw, nil
}

func (c *GatewayClient) Generate(ctx context.Context, req AIRequest) (*AIResponse, error) {
	if c.provider == nil {
		return nil, ErrMissingAPIKey
	}

	if req.ForceJSON && !c.provider.nativeJSON() {
		req.Prompt += jsonOnlyInstructions
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepBackoff(ctx, attempt-1); err != nil {
				return nil, err
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
		resp, err := c.provider.generate(callCtx, req)
		cancel()

		if err == nil && req.ForceJSON {
			var cleaned string
			cleaned, err = RecoverJSON(resp.Content)
			if err == nil {
				resp.Content = cleaned
			}
		}

		if err == nil {
			return resp, nil
		}
		if IsCredentialErr(err) {
			return nil, err
		}

		lastErr = err
		c.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"tier":    req.Tier,
		}).Warnf("AI call failed: %v", err)
	}

	return nil, lastErr
}

func (c *GatewayClient) Close() error {
	if c.provider == nil {
		return nil
	}
	return c.provider.close()
}

// sleepBackoff waits 2^attempt seconds or until the context is done.
func sleepBackoff(ctx context.Context, attempt int) error {
	delay := time.Duration(1<<uint(attempt)) * time.Second
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// estimateTokens approximates usage at 4 characters per token over the
// prompt plus the generated content, for providers that do not report it.
func estimateTokens(prompt, content string) int {
	return (len(prompt) + len(content)) / 4
}
