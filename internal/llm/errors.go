package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// Error kinds returned by Client. Match them with errors.Is.
var (
	ErrAuth              = errors.New("authentication failed")
	ErrAPI               = errors.New("API error")
	ErrTransport         = errors.New("transport error")
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusCode extracts the HTTP status carried by a go-openai error, or 0.
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func classify(err error) error {
	switch status := StatusCode(err); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrAuth, err)
	case status != 0:
		return fmt.Errorf("%w: %w", ErrAPI, err)
	default:
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
}
