// Package render writes completion results to the terminal.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/tnglemongrass/aider/go-kluster/internal/prompts"
)

// Renderer prints responses, optionally rendering the content as markdown.
type Renderer struct {
	gr     *glamour.TermRenderer
	writer io.Writer
}

// NewRenderer creates a Renderer writing to the given writer.
// If w is nil, os.Stdout is used. The content is printed verbatim unless markdown is set.
func NewRenderer(w io.Writer, markdown bool) (*Renderer, error) {
	if w == nil {
		w = os.Stdout
	}
	r := &Renderer{writer: w}
	if !markdown {
		return r, nil
	}
	gr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("create glamour renderer: %w", err)
	}
	r.gr = gr
	return r, nil
}

// Notice prints the pre-send notice and a blank line.
func (r *Renderer) Notice() error {
	_, err := fmt.Fprint(r.writer, prompts.SendingNotice+"\n\n")
	return err
}

// Response prints the response header naming model, followed by content.
func (r *Renderer) Response(model, content string) error {
	if _, err := fmt.Fprintln(r.writer, prompts.ResponseHeader(model)); err != nil {
		return err
	}
	if r.gr == nil {
		_, err := fmt.Fprintln(r.writer, content)
		return err
	}
	out, err := r.gr.Render(content)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(r.writer, out)
	return err
}
