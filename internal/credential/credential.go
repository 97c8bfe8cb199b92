// Package credential obtains the API key from configuration or an interactive prompt.
package credential

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tnglemongrass/aider/go-kluster/internal/prompts"
)

// ErrEmpty is returned when neither the environment nor the prompt yields a key.
var ErrEmpty = errors.New("no API key provided")

// Prompter reads a secret from the user without echoing it.
type Prompter interface {
	ReadPassword(prompt string) ([]byte, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(prompt string) ([]byte, error)

// ReadPassword calls f(prompt).
func (f PrompterFunc) ReadPassword(prompt string) ([]byte, error) {
	return f(prompt)
}

// Acquire returns configured when it is non-empty and only falls back to p otherwise.
func Acquire(configured string, p Prompter) (string, error) {
	if key := strings.TrimSpace(configured); key != "" {
		return key, nil
	}
	if p == nil {
		return "", ErrEmpty
	}
	raw, err := p.ReadPassword(prompts.APIKeyPrompt)
	if err != nil {
		return "", fmt.Errorf("read API key: %w", err)
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", ErrEmpty
	}
	return key, nil
}

// Terminal prompts on the controlling terminal with echo disabled.
// Stdin and Stdout default to the process streams when nil.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
}

// ReadPassword implements Prompter.
func (t Terminal) ReadPassword(prompt string) ([]byte, error) {
	cfg := &readline.Config{Stdin: t.Stdin, Stdout: t.Stdout}
	if t.Stdin != nil {
		cfg.FuncIsTerminal = func() bool { return false }
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	key, err := rl.ReadPassword(prompt)
	if errors.Is(err, readline.ErrInterrupt) {
		return nil, fmt.Errorf("prompt interrupted: %w", err)
	}
	return key, err
}
