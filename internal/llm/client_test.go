package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "my-model", req.Model)
		assert.Equal(t, []ChatMessage{{Role: RoleUser, Content: "Hi"}}, req.Messages)
		assert.False(t, req.Stream)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"chatcmpl-1","object":"chat.completion","model":"served-model",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Hello!"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":5,"completion_tokens":2,"total_tokens":7}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1", "test-key", "my-model")
	resp, err := client.Complete(context.Background(), []ChatMessage{{Role: RoleUser, Content: "Hi"}})
	require.NoError(t, err)
	assert.Equal(t, "served-model", resp.Model)
	assert.Equal(t, "stop", resp.Choices[0].FinishReason)
	assert.Equal(t, 7, resp.Usage.TotalTokens)

	content, err := resp.Content()
	require.NoError(t, err)
	assert.Equal(t, "Hello!", content)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"model":"m","choices":[]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1", "k", "m")
	resp, err := client.Complete(context.Background(), nil)
	require.NoError(t, err)

	_, err = resp.Content()
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCompleteAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1", "bad-key", "m")
	_, err := client.Complete(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuth)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.Contains(t, err.Error(), "invalid key")
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1", "k", "m")
	_, err := client.Complete(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPI)
	assert.NotErrorIs(t, err, ErrAuth)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url+"/v1", "k", "m")
	_, err := client.Complete(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Zero(t, StatusCode(err))
}

func TestCompleteCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL+"/v1", "k", "m")
	_, err := client.Complete(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"object":"list","data":[{"id":"a","object":"model","owned_by":"x"},{"id":"b","object":"model"}]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1/", "k", "m")
	models, err := client.Models(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "a", models[0].ID)
	assert.Equal(t, "x", models[0].OwnedBy)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("https://api.example.com/v1/", "k", "m")
	assert.Equal(t, "https://api.example.com/v1", c.BaseURL)
	assert.Equal(t, "m", c.Model)
}

func TestContentNilResponse(t *testing.T) {
	var r *ChatCompletionResponse
	_, err := r.Content()
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCompleteDefaultsMissingRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"model":"m","choices":[{"message":{"content":"hello"}}]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1", "k", "m")
	resp, err := client.Complete(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, RoleAssistant, resp.Choices[0].Message.Role)
	assert.Equal(t, "hello", resp.Choices[0].Message.Content)
}
