package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"example.com/smartsave-campus/backend/internal/ai"
	"example.com/smartsave-campus/backend/internal/models"
)

var (
	ErrResponseParse  = errors.New("ai response is not valid json")
	ErrResponseShape  = errors.New("ai response has invalid shape")
	ErrResponseStatus = errors.New("ai response has invalid status")
)

// IsUpstreamContractError reports whether the provider answered with something unusable.
func IsUpstreamContractError(err error) bool {
	return errors.Is(err, ai.ErrEmptyResponse) ||
		errors.Is(err, ErrResponseParse) ||
		errors.Is(err, ErrResponseShape) ||
		errors.Is(err, ErrResponseStatus)
}

// ParseResponse разбирает ответ модели и проверяет его контракт.
// Поле message приводится к строке, status проверяется строго.
func ParseResponse(raw string) (PurchaseAdviceResponse, error) {
	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return PurchaseAdviceResponse{}, fmt.Errorf("%w: %v", ErrResponseParse, err)
	}

	object, ok := decoded.(map[string]interface{})
	if !ok {
		return PurchaseAdviceResponse{}, ErrResponseShape
	}

	rawStatus, hasStatus := object["status"]
	rawMessage, hasMessage := object["message"]
	if !hasStatus || !hasMessage {
		return PurchaseAdviceResponse{}, ErrResponseShape
	}

	statusText, _ := rawStatus.(string)
	status := models.AdviceStatus(statusText)
	if !status.Valid() {
		return PurchaseAdviceResponse{}, fmt.Errorf("%w: %v", ErrResponseStatus, rawStatus)
	}

	response := PurchaseAdviceResponse{
		Status:  status,
		Message: coerceString(rawMessage),
	}

	if suggestion, ok := object["suggestion"].(string); ok {
		response.Suggestion = &suggestion
	}

	return response, nil
}

func coerceString(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}
		return string(encoded)
	}
}
