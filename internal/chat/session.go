// Package chat performs a single chat-completion exchange with the API.
package chat

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tnglemongrass/aider/go-kluster/internal/config"
	"github.com/tnglemongrass/aider/go-kluster/internal/llm"
	"github.com/tnglemongrass/aider/go-kluster/internal/models"
	"github.com/tnglemongrass/aider/go-kluster/internal/render"
)

// Session sends one request built from the configuration and prints the reply.
type Session struct {
	cfg      *config.Config
	client   *llm.Client
	renderer *render.Renderer
	modelMgr *models.Manager
	log      *zap.Logger
	writer   io.Writer
}

// NewSession creates a session authenticated with apiKey. Output goes to w
// (os.Stdout when nil). A nil logger disables logging.
func NewSession(cfg *config.Config, apiKey string, w io.Writer, log *zap.Logger) (*Session, error) {
	if w == nil {
		w = os.Stdout
	}
	if log == nil {
		log = zap.NewNop()
	}
	r, err := render.NewRenderer(w, cfg.Markdown)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	client := llm.NewClient(cfg.APIBase, apiKey, cfg.Model)
	return &Session{
		cfg:      cfg,
		client:   client,
		renderer: r,
		modelMgr: models.NewManager(client),
		log:      log,
		writer:   w,
	}, nil
}

// Messages returns the request messages: the configured prompt as a single user message.
func (s *Session) Messages() []llm.ChatMessage {
	return []llm.ChatMessage{{Role: llm.RoleUser, Content: s.cfg.Prompt}}
}

// Ask prints the notice, sends the request once and prints the model and reply.
// Nothing past the notice is printed when the request fails or has no choices.
func (s *Session) Ask(ctx context.Context) error {
	if err := s.renderer.Notice(); err != nil {
		return err
	}

	s.log.Debug("sending chat completion",
		zap.String("base_url", s.client.BaseURL),
		zap.String("model", s.client.Model))

	resp, err := s.client.Complete(ctx, s.Messages())
	if err != nil {
		s.log.Debug("chat completion failed", zap.Int("status", llm.StatusCode(err)), zap.Error(err))
		return err
	}

	content, err := resp.Content()
	if err != nil {
		return err
	}

	s.log.Debug("chat completion received",
		zap.String("id", resp.ID),
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return s.renderer.Response(resp.Model, content)
}

// ListModels prints the models served by the API, marking the configured one.
// A configured model the API does not serve is reported as a warning.
func (s *Session) ListModels(ctx context.Context) error {
	modelList, err := s.modelMgr.List(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	served, err := s.modelMgr.Has(ctx, s.client.Model)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	if !served {
		s.log.Warn("configured model is not served by the API",
			zap.String("model", s.client.Model),
			zap.String("base_url", s.client.BaseURL))
	}
	var sb strings.Builder
	sb.WriteString("Available models:\n")
	for _, m := range modelList {
		marker := "  "
		if m.ID == s.client.Model {
			marker = "* "
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", marker, m.ID))
	}
	_, err = fmt.Fprint(s.writer, sb.String())
	return err
}
