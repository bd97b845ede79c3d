package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const invalidBodyMessage = "Invalid request body."

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details *ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail lists problems per request field. FormErrors holds
// problems that do not belong to a single field, such as malformed JSON.
type ValidationDetail struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func conflict(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

func tooManyRequests(c echo.Context, message string) error {
	return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: message})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// invalidBody отвечает 400 с деталями ошибок привязки или валидации.
func invalidBody(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   invalidBodyMessage,
		Details: describeInvalidBody(err),
	})
}

func fieldError(c echo.Context, field, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: invalidBodyMessage,
		Details: &ValidationDetail{
			FormErrors:  []string{},
			FieldErrors: map[string][]string{field: {message}},
		},
	})
}

func describeInvalidBody(err error) *ValidationDetail {
	detail := &ValidationDetail{
		FormErrors:  []string{},
		FieldErrors: map[string][]string{},
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			name := fieldErr.Field()
			detail.FieldErrors[name] = append(detail.FieldErrors[name], validationMessage(fieldErr))
		}
		return detail
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		detail.FieldErrors[typeErr.Field] = []string{"Expected " + jsonKind(typeErr.Type) + ", received " + typeErr.Value}
		return detail
	}

	detail.FormErrors = append(detail.FormErrors, "Request body must be a valid JSON object")
	return detail
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}

	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "Required"
	case "min":
		return "Must contain at least " + fieldErr.Param() + " character(s)"
	case "gte":
		return "Must be greater than or equal to " + fieldErr.Param()
	case "gt":
		return "Must be greater than " + fieldErr.Param()
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(fieldErr.Param()), ", ")
	default:
		return "Invalid value"
	}
}
