package utils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripforge/internal/config"
)

func testGatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		Provider:       "gemini",
		MaxAttempts:    3,
		RequestTimeout: time.Second,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// A gateway without a key must construct fine and fail fast on use,
// without ever touching the network.
func TestGatewayMissingKeyFailsFast(t *testing.T) {
	client, err := NewAIClient(context.Background(), testGatewayConfig(), quietLogger())
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), AIRequest{Tier: TierFast, Prompt: "hello"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.True(t, IsCredentialErr(err))

	assert.NoError(t, client.Close())
}

func TestGatewayUnsupportedProvider(t *testing.T) {
	cfg := testGatewayConfig()
	cfg.Provider = "llamacloud"

	_, err := NewAIClient(context.Background(), cfg, quietLogger())
	assert.Error(t, err)
}

func TestGatewayOpenAIMissingKey(t *testing.T) {
	cfg := testGatewayConfig()
	cfg.Provider = "openai"

	client, err := NewAIClient(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), AIRequest{Tier: TierStandard, Prompt: "hello"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

// scriptedProvider replays a fixed sequence of provider outcomes and
// records what the gateway sent it.
type scriptedProvider struct {
	outcomes []func() (*AIResponse, error)
	calls    int
	prompts  []string
	json     bool
}

func (p *scriptedProvider) generate(ctx context.Context, req AIRequest) (*AIResponse, error) {
	p.prompts = append(p.prompts, req.Prompt)
	i := p.calls
	p.calls++
	if i >= len(p.outcomes) {
		return nil, &TransientError{Op: "script", Err: context.Canceled}
	}
	return p.outcomes[i]()
}

func (p *scriptedProvider) nativeJSON() bool { return p.json }

func (p *scriptedProvider) close() error { return nil }

func newScriptedGateway(p *scriptedProvider, maxAttempts int) *GatewayClient {
	cfg := testGatewayConfig()
	cfg.MaxAttempts = maxAttempts
	return &GatewayClient{provider: p, cfg: cfg, log: quietLogger()}
}

func transientOutcome() (*AIResponse, error) {
	return nil, &TransientError{Op: "generate", Err: assert.AnError}
}

func malformedOutcome() (*AIResponse, error) {
	return nil, &MalformedResponseError{Reason: "no candidates"}
}

func TestGatewayRetriesTransientThenSucceeds(t *testing.T) {
	provider := &scriptedProvider{
		json: true,
		outcomes: []func() (*AIResponse, error){
			transientOutcome,
			func() (*AIResponse, error) {
				return &AIResponse{Content: "all good", TokensUsed: 10}, nil
			},
		},
	}
	gw := newScriptedGateway(provider, 3)

	resp, err := gw.Generate(context.Background(), AIRequest{Tier: TierFast, Prompt: "hi"})
	require.NoError(t, err)

	// One retry, then the success ends the loop before the third attempt.
	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, "all good", resp.Content)
}

func TestGatewayRetriesMalformedResponse(t *testing.T) {
	provider := &scriptedProvider{
		json: true,
		outcomes: []func() (*AIResponse, error){
			malformedOutcome,
			func() (*AIResponse, error) {
				return &AIResponse{Content: `{"days": []}`}, nil
			},
		},
	}
	gw := newScriptedGateway(provider, 2)

	resp, err := gw.Generate(context.Background(), AIRequest{Tier: TierFast, Prompt: "hi", ForceJSON: true})
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, `{"days": []}`, resp.Content)
}

func TestGatewayExhaustsAttemptsAndPropagates(t *testing.T) {
	provider := &scriptedProvider{
		json:     true,
		outcomes: []func() (*AIResponse, error){transientOutcome, transientOutcome},
	}
	gw := newScriptedGateway(provider, 2)

	_, err := gw.Generate(context.Background(), AIRequest{Tier: TierFast, Prompt: "hi"})
	require.Error(t, err)

	assert.Equal(t, 2, provider.calls)
	assert.True(t, IsTransientErr(err))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGatewayNoRetryOnFirstSuccess(t *testing.T) {
	provider := &scriptedProvider{
		json: true,
		outcomes: []func() (*AIResponse, error){
			func() (*AIResponse, error) {
				return &AIResponse{Content: "first try"}, nil
			},
		},
	}
	gw := newScriptedGateway(provider, 3)

	resp, err := gw.Generate(context.Background(), AIRequest{Tier: TierFast, Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "first try", resp.Content)
}

func TestGatewayProviderCredentialErrorNotRetried(t *testing.T) {
	provider := &scriptedProvider{
		json: true,
		outcomes: []func() (*AIResponse, error){
			func() (*AIResponse, error) {
				return nil, fmt.Errorf("auth check: %w", ErrMissingAPIKey)
			},
		},
	}
	gw := newScriptedGateway(provider, 3)

	_, err := gw.Generate(context.Background(), AIRequest{Tier: TierFast, Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, IsCredentialErr(err))
	assert.Equal(t, 1, provider.calls)
}

// Providers without native JSON mode get explicit instructions appended
// and fenced output recovered.
func TestGatewayForceJSONOnNonNativeProvider(t *testing.T) {
	provider := &scriptedProvider{
		json: false,
		outcomes: []func() (*AIResponse, error){
			func() (*AIResponse, error) {
				return &AIResponse{Content: "```json\n{\"days\": []}\n```"}, nil
			},
		},
	}
	gw := newScriptedGateway(provider, 3)

	resp, err := gw.Generate(context.Background(), AIRequest{Tier: TierFast, Prompt: "plan it", ForceJSON: true})
	require.NoError(t, err)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Return pure JSON only")
	assert.Equal(t, `{"days": []}`, resp.Content)
}

func TestSleepBackoffHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepBackoff(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 2, estimateTokens("1234", "5678"))
	assert.Zero(t, estimateTokens("", ""))
}
