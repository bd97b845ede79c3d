package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient calls the Gemini API through the official genai SDK.
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiClient создает клиент Gemini с заданными параметрами.
func NewGeminiClient(ctx context.Context, apiKey, baseURL, model string, timeout time.Duration, maxTokens int) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: trimmed + "/"}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model, maxTokens: maxTokens}, nil
}

// Generate отправляет системную инструкцию и запрос пользователя в Gemini в JSON-режиме.
func (c *GeminiClient) Generate(ctx context.Context, systemInstruction, userInstruction string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](jsonTemperature),
		MaxOutputTokens:   int32(resolveMaxTokens(c.maxTokens)),
		ResponseMIMEType:  "application/json",
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userInstruction), config)
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
