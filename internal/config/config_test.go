package config

import (
	"reflect"
	"testing"
	"time"
)

// TestParseListEnv проверяет, что origin из ENV обрезаются, но не меняют регистр.
func TestParseListEnv(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", " http://localhost:8081, ,https://App.example.com ")

	got := parseListEnv("CORS_ALLOW_ORIGINS")
	want := []string{"http://localhost:8081", "https://App.example.com"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseListEnvMissing проверяет поведение при отсутствии переменной.
func TestParseListEnvMissing(t *testing.T) {
	got := parseListEnv("MISSING_ENV")
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", "")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORE_DEMO_DATA", "false")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("AI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("AI_BASE_URL", "")
	t.Setenv("AI_MODEL", "gemini-2.5-flash")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("ADVICE_DAILY_QUOTA", "0")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
}

// TestLoadMemoryDefaults проверяет загрузку с хранилищем в памяти.
func TestLoadMemoryDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AI_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Driver != StoreDriverMemory {
		t.Fatalf("expected memory driver, got %s", cfg.Store.Driver)
	}

	if cfg.AI.Timeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %v", cfg.AI.Timeout)
	}

	if cfg.AI.APIKey != "" {
		t.Fatalf("expected empty api key, got %q", cfg.AI.APIKey)
	}

	if !reflect.DeepEqual(cfg.CORS.AllowOrigins, []string{"*"}) {
		t.Fatalf("expected wildcard origins, got %v", cfg.CORS.AllowOrigins)
	}

	if cfg.Redis.QuotaEnabled() {
		t.Fatalf("expected quota to be disabled")
	}
}

// TestLoadKeepsCORSOriginCase проверяет, что Load не меняет регистр origin.
func TestLoadKeepsCORSOriginCase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOW_ORIGINS", "https://Campus.example.com,http://localhost:8081")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"https://Campus.example.com", "http://localhost:8081"}
	if !reflect.DeepEqual(cfg.CORS.AllowOrigins, want) {
		t.Fatalf("expected %v, got %v", want, cfg.CORS.AllowOrigins)
	}
}

// TestLoadProviderKeyFallback проверяет ключ провайдера из отдельной переменной.
func TestLoadProviderKeyFallback(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AI_PROVIDER", "groq")
	t.Setenv("AI_MODEL", "llama-3.1-8b-instant")
	t.Setenv("AI_BASE_URL", "https://api.groq.com/openai/v1")
	t.Setenv("GROQ_API_KEY", "groq-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AI.APIKey != "groq-secret" {
		t.Fatalf("expected groq key, got %q", cfg.AI.APIKey)
	}
}

// TestLoadRejectsUnknownProvider проверяет валидацию провайдера.
func TestLoadRejectsUnknownProvider(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AI_PROVIDER", "openai")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

// TestLoadQuotaRequiresRedis проверяет, что квота без Redis отклоняется.
func TestLoadQuotaRequiresRedis(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADVICE_DAILY_QUOTA", "5")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when quota is set without redis")
	}

	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Redis.QuotaEnabled() {
		t.Fatalf("expected quota to be enabled")
	}
}

// TestLoadDemoDataRequiresMemory проверяет ограничение демо-данных.
func TestLoadDemoDataRequiresMemory(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("STORE_DEMO_DATA", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for demo data with postgres")
	}
}

// TestParseBoolEnvInvalid проверяет ошибку разбора булевого значения.
func TestParseBoolEnvInvalid(t *testing.T) {
	t.Setenv("DB_MIGRATE", "sometimes")

	if _, err := parseBoolEnv("DB_MIGRATE", true); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
}
