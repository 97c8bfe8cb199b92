// Package llm provides an OpenAI-compatible client for chat completions.
package llm

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Client communicates with an OpenAI-compatible API.
type Client struct {
	BaseURL string
	Model   string

	api *openai.Client
}

// NewClient creates a Client sending bearer-authenticated requests to baseURL.
// baseURL includes the version segment, e.g. https://api.kluster.ai/v1.
func NewClient(baseURL, apiKey, model string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{
		BaseURL: baseURL,
		Model:   model,
		api:     openai.NewClientWithConfig(cfg),
	}
}

// Complete sends a single non-streaming chat completion request. It does not retry.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (*ChatCompletionResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.Model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classify(err)
	}

	out := &ChatCompletionResponse{
		ID:    resp.ID,
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	for _, ch := range resp.Choices {
		role := ch.Message.Role
		if role == "" {
			role = RoleAssistant
		}
		out.Choices = append(out.Choices, ChatCompletionChoice{
			Index:        ch.Index,
			Message:      ChatMessage{Role: role, Content: ch.Message.Content},
			FinishReason: string(ch.FinishReason),
		})
	}
	return out, nil
}

// Models lists the models served at the base URL.
func (c *Client) Models(ctx context.Context) ([]ModelInfo, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		out = append(out, ModelInfo{ID: m.ID, Object: m.Object, OwnedBy: m.OwnedBy})
	}
	return out, nil
}
