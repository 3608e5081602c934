package utils

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tripforge/internal/config"
)

// geminiClient talks to Google's Gemini models.
type geminiClient struct {
	client *genai.Client
	cfg    config.GatewayConfig
}

func newGeminiClient(ctx context.Context, cfg config.GatewayConfig) (*geminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, err
	}
	return &geminiClient{client: client, cfg: cfg}, nil
}

// Gemini supports application/json response mode natively.
func (g *geminiClient) nativeJSON() bool { return true }

func (g *geminiClient) modelFor(tier ModelTier) string {
	if tier == TierStandard {
		return g.cfg.StandardModel
	}
	return g.cfg.FastModel
}

func (g *geminiClient) generate(ctx context.Context, req AIRequest) (*AIResponse, error) {
	modelName := g.modelFor(req.Tier)
	m := g.client.GenerativeModel(modelName)
	m.SetTemperature(req.Temperature)
	if req.MaxOutputTokens > 0 {
		m.SetMaxOutputTokens(int32(req.MaxOutputTokens))
	}
	if req.ForceJSON {
		m.ResponseMIMEType = "application/json"
	}

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, &TransientError{Op: "gemini generate", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &MalformedResponseError{Reason: "no candidates in Gemini response"}
	}

	cand := resp.Candidates[0]
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	content := sb.String()
	if strings.TrimSpace(content) == "" {
		return nil, &MalformedResponseError{Reason: "empty candidate content"}
	}

	tokens := estimateTokens(req.Prompt, content)
	if resp.UsageMetadata != nil && resp.UsageMetadata.TotalTokenCount > 0 {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &AIResponse{
		Content:      content,
		TokensUsed:   tokens,
		Model:        modelName,
		FinishReason: cand.FinishReason.String(),
	}, nil
}

func (g *geminiClient) close() error {
	return g.client.Close()
}
