package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderGemini    = "gemini"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"

	KindMissingCredential = "missing-credential"

	defaultMaxTokens = 1024
	jsonTemperature  = 0.2
)

// ErrEmptyResponse возвращается, когда провайдер не вернул текст.
var ErrEmptyResponse = errors.New("ai provider returned empty response")

// ConfigurationError reports a reasoning provider that cannot be called at all.
type ConfigurationError struct {
	Kind     string
	Provider string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s is not configured", e.Provider, e.Kind)
}

// Client is the single capability the advisor needs from an LLM provider.
type Client interface {
	Generate(ctx context.Context, systemInstruction, userInstruction string) (string, error)
}

type Settings struct {
	Provider        string
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	MaxOutputTokens int
}

// New создает клиента выбранного провайдера. Наличие ключа проверяется один раз здесь.
func New(ctx context.Context, settings Settings) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(settings.Provider))

	switch provider {
	case ProviderGemini, ProviderGroq, ProviderAnthropic:
	default:
		return nil, fmt.Errorf("unknown ai provider %q", settings.Provider)
	}

	if strings.TrimSpace(settings.APIKey) == "" {
		return unconfiguredClient{provider: provider}, nil
	}

	switch provider {
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, settings.APIKey, settings.BaseURL, settings.Model, settings.Timeout, settings.MaxOutputTokens)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderAnthropic:
		return NewAnthropicClient(settings.APIKey, settings.BaseURL, settings.Model, settings.Timeout, settings.MaxOutputTokens), nil
	default:
		return NewGroqClient(settings.APIKey, settings.BaseURL, settings.Model, settings.Timeout, settings.MaxOutputTokens), nil
	}
}

// IsConfigured reports whether the client can reach a provider.
func IsConfigured(client Client) bool {
	_, missing := client.(unconfiguredClient)
	return client != nil && !missing
}

type unconfiguredClient struct {
	provider string
}

func (c unconfiguredClient) Generate(context.Context, string, string) (string, error) {
	return "", &ConfigurationError{Kind: KindMissingCredential, Provider: c.provider}
}

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}
