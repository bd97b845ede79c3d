package advisor

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComposePromptEmbedsContextJSON проверяет встраивание контекста в промпт.
func TestComposePromptEmbedsContextJSON(t *testing.T) {
	remaining := 50.0
	advisorContext := AdvisorContext{
		UserID:                 "student-1",
		Message:                "New headphones?",
		Category:               "shopping",
		OverallWeeklyRemaining: &remaining,
	}

	prompt, err := ComposePrompt(advisorContext)
	require.NoError(t, err)

	assert.Equal(t, SystemInstruction, prompt.System)
	assert.Contains(t, prompt.User, "```json\n")
	assert.Contains(t, prompt.User, `"GO"`)
	assert.Contains(t, prompt.User, `"CAREFUL"`)
	assert.Contains(t, prompt.User, `"NOPE"`)

	start := strings.Index(prompt.User, "```json\n") + len("```json\n")
	end := strings.Index(prompt.User[start:], "\n```")
	require.Positive(t, end)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(prompt.User[start:start+end]), &decoded))
	assert.Equal(t, "student-1", decoded["userId"])
	assert.Nil(t, decoded["price"])
	assert.Contains(t, decoded, "price")
	assert.Equal(t, []interface{}{}, decoded["budgets"])
	assert.Equal(t, 50.0, decoded["overallWeeklyRemaining"])
}

// TestSystemInstructionForbidsInvestingAdvice проверяет ограничения системной инструкции.
func TestSystemInstructionForbidsInvestingAdvice(t *testing.T) {
	assert.Contains(t, SystemInstruction, "Do NOT give investing, tax, or stock-picking advice.")
	assert.Contains(t, SystemInstruction, "Respond ONLY with a compact JSON object")
}

// TestComposePromptKeepsMessageVerbatim проверяет, что сообщение встраивается без HTML-экранирования.
func TestComposePromptKeepsMessageVerbatim(t *testing.T) {
	prompt, err := ComposePrompt(AdvisorContext{UserID: "student-1", Message: "<now> & later", Category: "general"})
	require.NoError(t, err)

	assert.Contains(t, prompt.User, `"message":"<now> & later"`)
	assert.NotContains(t, prompt.User, `<`)
	assert.Contains(t, prompt.User, "}\n```\n")
}
