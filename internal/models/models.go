// Package models provides model listing from an OpenAI-compatible API.
package models

import (
	"context"
	"sync"

	"github.com/tnglemongrass/aider/go-kluster/internal/llm"
)

// Lister fetches the models served by the API.
type Lister interface {
	Models(ctx context.Context) ([]llm.ModelInfo, error)
}

// Manager fetches and caches the list of available models.
type Manager struct {
	lister Lister

	mu     sync.Mutex
	cached []llm.ModelInfo
}

// NewManager creates a Manager backed by l.
func NewManager(l Lister) *Manager {
	return &Manager{lister: l}
}

// List returns the available models, fetching from the API if not cached.
func (m *Manager) List(ctx context.Context) ([]llm.ModelInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil {
		return m.cached, nil
	}

	list, err := m.lister.Models(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []llm.ModelInfo{}
	}
	m.cached = list
	return m.cached, nil
}

// Has returns true if the given model ID is in the list of available models.
func (m *Manager) Has(ctx context.Context, modelID string) (bool, error) {
	models, err := m.List(ctx)
	if err != nil {
		return false, err
	}
	for _, model := range models {
		if model.ID == modelID {
			return true, nil
		}
	}
	return false, nil
}
