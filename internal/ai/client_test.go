package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewWithoutKeyFailsBeforeNetwork проверяет ошибку конфигурации без ключа и без сетевого вызова.
func TestNewWithoutKeyFailsBeforeNetwork(t *testing.T) {
	for _, provider := range []string{ProviderGemini, ProviderGroq, ProviderAnthropic} {
		t.Run(provider, func(t *testing.T) {
			client, err := New(context.Background(), Settings{Provider: provider, BaseURL: "http://127.0.0.1:1"})
			require.NoError(t, err)
			assert.False(t, IsConfigured(client))

			_, err = client.Generate(context.Background(), "system", "user")

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, KindMissingCredential, cfgErr.Kind)
			assert.Equal(t, provider, cfgErr.Provider)
		})
	}
}

// TestNewUnknownProvider проверяет отказ для неизвестного провайдера.
func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Settings{Provider: "openai", APIKey: "key"})
	require.Error(t, err)
}

// TestNewConfiguredProvider проверяет выбор провайдера без учета регистра.
func TestNewConfiguredProvider(t *testing.T) {
	client, err := New(context.Background(), Settings{Provider: "GROQ", APIKey: "key", BaseURL: "http://localhost"})
	require.NoError(t, err)
	assert.True(t, IsConfigured(client))
	assert.IsType(t, &GroqClient{}, client)
}

// TestGroqGenerate проверяет запрос к Groq в JSON-режиме.
func TestGroqGenerate(t *testing.T) {
	var captured groqChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" {\"status\":\"GO\",\"message\":\"ok\"} "}}]}`))
	}))
	defer server.Close()

	client := NewGroqClient("secret", server.URL+"/", "llama", time.Second, 0)
	text, err := client.Generate(context.Background(), "sys", "usr")
	require.NoError(t, err)

	assert.Equal(t, `{"status":"GO","message":"ok"}`, text)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "sys", captured.Messages[0].Content)
	assert.Equal(t, "usr", captured.Messages[1].Content)
	assert.Equal(t, defaultMaxTokens, captured.MaxTokens)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

// TestGroqGenerateEmptyContent проверяет пустой текст ответа Groq.
func TestGroqGenerateEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"   "}}]}`))
	}))
	defer server.Close()

	_, err := NewGroqClient("secret", server.URL, "llama", time.Second, 64).Generate(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

// TestGroqGenerateNoChoices проверяет ответ Groq без вариантов.
func TestGroqGenerateNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := NewGroqClient("secret", server.URL, "llama", time.Second, 64).Generate(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

// TestGroqGenerateAPIError проверяет ошибку API Groq.
func TestGroqGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	_, err := NewGroqClient("secret", server.URL, "llama", time.Second, 64).Generate(context.Background(), "s", "u")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyResponse))
	assert.Contains(t, err.Error(), "rate limited")
}

// TestAnthropicGenerate проверяет запрос к Anthropic с системной инструкцией.
func TestAnthropicGenerate(t *testing.T) {
	var captured anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"status\":"},{"type":"text","text":"\"NOPE\",\"message\":\"no\"}"}]}`))
	}))
	defer server.Close()

	text, err := NewAnthropicClient("secret", server.URL, "claude", time.Second, 256).Generate(context.Background(), "sys", "usr")
	require.NoError(t, err)

	assert.Equal(t, `{"status":"NOPE","message":"no"}`, text)
	assert.Equal(t, "sys", captured.System)
	assert.Equal(t, 256, captured.MaxTokens)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "usr", captured.Messages[0].Content)
}

// TestAnthropicGenerateEmpty проверяет пустой ответ Anthropic.
func TestAnthropicGenerateEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	_, err := NewAnthropicClient("secret", server.URL, "claude", time.Second, 0).Generate(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func newGeminiTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(context.Background(), "secret", server.URL, "gemini-2.5-flash", time.Second, 64)
	require.NoError(t, err)
	return client
}

// TestGeminiGenerateRequestsJSONMode проверяет JSON-режим и системную инструкцию в запросе к Gemini.
func TestGeminiGenerateRequestsJSONMode(t *testing.T) {
	var captured map[string]interface{}
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":" {\"status\":\"GO\",\"message\":\"ok\"} "}]}}]}`))
	})

	text, err := client.Generate(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, `{"status":"GO","message":"ok"}`, text)

	generationConfig, ok := captured["generationConfig"].(map[string]interface{})
	require.True(t, ok, "generationConfig missing: %v", captured)
	assert.Equal(t, "application/json", generationConfig["responseMimeType"])
	assert.Equal(t, 64.0, generationConfig["maxOutputTokens"])

	systemInstruction, ok := captured["systemInstruction"].(map[string]interface{})
	require.True(t, ok, "systemInstruction missing: %v", captured)
	encodedSystem, err := json.Marshal(systemInstruction)
	require.NoError(t, err)
	assert.Contains(t, string(encodedSystem), `"sys"`)

	encodedContents, err := json.Marshal(captured["contents"])
	require.NoError(t, err)
	assert.Contains(t, string(encodedContents), `"usr"`)
}

// TestGeminiGenerateEmptyCandidates проверяет пустой ответ Gemini.
func TestGeminiGenerateEmptyCandidates(t *testing.T) {
	for name, body := range map[string]string{
		"no candidates": `{"candidates":[]}`,
		"blank text":    `{"candidates":[{"content":{"role":"model","parts":[{"text":"   "}]}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			})

			_, err := client.Generate(context.Background(), "s", "u")
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

// TestGeminiGenerateAPIError проверяет ошибку API Gemini.
func TestGeminiGenerateAPIError(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := client.Generate(context.Background(), "s", "u")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyResponse))
	assert.Contains(t, err.Error(), "gemini api error")
	assert.Contains(t, err.Error(), "API key not valid")
}
