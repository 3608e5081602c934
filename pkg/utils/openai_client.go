package utils

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"tripforge/internal/config"
)

// openAIClient talks to OpenAI-compatible chat completion backends.
type openAIClient struct {
	client *openai.Client
	cfg    config.GatewayConfig
}

func newOpenAIClient(cfg config.GatewayConfig) *openAIClient {
	return &openAIClient{client: openai.NewClient(cfg.OpenAIAPIKey), cfg: cfg}
}

// Structured output is requested through prompt instructions instead of a
// response_format, which not all compatible backends implement.
func (o *openAIClient) nativeJSON() bool { return false }

func (o *openAIClient) modelFor(tier ModelTier) string {
	if tier == TierStandard {
		return o.cfg.StandardModel
	}
	return o.cfg.FastModel
}

func (o *openAIClient) generate(ctx context.Context, req AIRequest) (*AIResponse, error) {
	modelName := o.modelFor(req.Tier)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       modelName,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		return nil, &TransientError{Op: "openai chat completion", Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &MalformedResponseError{Reason: "no choices in completion response"}
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, &MalformedResponseError{Reason: "empty completion content"}
	}

	tokens := resp.Usage.TotalTokens
	if tokens == 0 {
		tokens = estimateTokens(req.Prompt, content)
	}

	return &AIResponse{
		Content:      content,
		TokensUsed:   tokens,
		Model:        modelName,
		FinishReason: string(resp.Choices[0].FinishReason),
	}, nil
}

func (o *openAIClient) close() error { return nil }
