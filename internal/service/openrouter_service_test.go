package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestOpenRouter(baseURL string) *OpenRouterService {
	return &OpenRouterService{
		APIKey:  "test-key",
		BaseURL: baseURL,
		client:  resty.New().SetTimeout(5 * time.Second),
	}
}

func TestOpenRouterJudge(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		gotBody, _ = io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": `{"Correctness":"Correct"}`}},
			},
		})
	}))
	defer srv.Close()

	svc := newTestOpenRouter(srv.URL)
	reply, err := svc.Judge(context.Background(), "openai/gpt-4o-mini", 0.1, "Rate this answer")
	require.NoError(t, err)
	assert.Equal(t, `{"Correctness":"Correct"}`, reply)

	assert.Equal(t, "openai/gpt-4o-mini", gjson.GetBytes(gotBody, "model").String())
	assert.Equal(t, 0.1, gjson.GetBytes(gotBody, "temperature").Float())
	assert.Equal(t, "Rate this answer", gjson.GetBytes(gotBody, "messages.1.content").String())
}

func TestOpenRouterJudgeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer srv.Close()

	svc := newTestOpenRouter(srv.URL)
	_, err := svc.Judge(context.Background(), "openai/gpt-4o-mini", 0.1, "Rate this answer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestOpenRouterJudgeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	svc := newTestOpenRouter(srv.URL)
	_, err := svc.Judge(context.Background(), "openai/gpt-4o-mini", 0.1, "Rate this answer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response from LLM")
}

func TestOpenRouterJudgeValidation(t *testing.T) {
	svc := newTestOpenRouter("http://localhost:0")

	_, err := svc.Judge(context.Background(), "", 0.1, "prompt")
	assert.Error(t, err)

	_, err = svc.Judge(context.Background(), "some/model", 0.1, "   ")
	assert.Error(t, err)
}

func TestJudgeRegistry(t *testing.T) {
	or := newTestOpenRouter("http://localhost:0")
	registry := NewJudgeRegistry(or)

	got, err := registry.For("openrouter")
	require.NoError(t, err)
	assert.Equal(t, "openrouter", got.Provider())

	_, err = registry.For("anthropic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")

	assert.Equal(t, []string{"openrouter"}, registry.Providers())
}
