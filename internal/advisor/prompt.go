package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PromptVersion is bumped whenever SystemInstruction or the user template changes.
const PromptVersion = "purchase-advice/v1"

// SystemInstruction is the fixed persona and output contract sent with every advice call.
var SystemInstruction = strings.Join([]string{
	"You are SmartSave Campus, a friendly money coach for college students.",
	"Give simple, non-technical money guidance.",
	"Use only the budget and spending data provided.",
	"Do NOT give investing, tax, or stock-picking advice.",
	`Always choose one status label: "GO", "CAREFUL", or "NOPE".`,
	"Keep your explanation in clear, friendly language.",
	"Respond ONLY with a compact JSON object and nothing else.",
	`JSON shape: { "status": "GO" | "CAREFUL" | "NOPE", "message": string, "suggestion"?: string }.`,
	"Message and suggestion must each be 1-2 sentences max.",
}, " ")

const userInstructionTemplate = "Here is the context JSON for this student and purchase:\n" +
	"```json\n%s\n```\n" +
	"\n" +
	"Use this data to decide if the purchase fits their budgets.\n" +
	"- If the purchase comfortably fits the relevant budget and overall weekly budget, use status \"GO\".\n" +
	"- If it fits but leaves them very tight or slightly over, use status \"CAREFUL\".\n" +
	"- If it clearly pushes them over budget or looks risky, use status \"NOPE\".\n" +
	"Explain your reasoning briefly in the message using the numbers from the JSON.\n" +
	"Optionally add a specific, practical suggestion in the suggestion field (e.g. wait until next week, choose a cheaper option, or skip it)."

// ComposePrompt сериализует контекст и формирует системную и пользовательскую инструкции.
func ComposePrompt(advisorContext AdvisorContext) (Prompt, error) {
	if advisorContext.Budgets == nil {
		advisorContext.Budgets = []BudgetContext{}
	}

	var payload bytes.Buffer
	encoder := json.NewEncoder(&payload)
	// Контекст встраивается как есть: без экранирования <, > и &.
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(advisorContext); err != nil {
		return Prompt{}, fmt.Errorf("encode advisor context: %w", err)
	}

	return Prompt{
		System: SystemInstruction,
		User:   fmt.Sprintf(userInstructionTemplate, bytes.TrimRight(payload.Bytes(), "\n")),
	}, nil
}
