package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/smartsave-campus/backend/internal/advisor"
	"example.com/smartsave-campus/backend/internal/ai"
	"example.com/smartsave-campus/backend/internal/metrics"
	"example.com/smartsave-campus/backend/internal/models"
	"example.com/smartsave-campus/backend/internal/notifications"
	"example.com/smartsave-campus/backend/internal/repository"
)

const (
	adviceNotConfiguredMessage = "AI service is not configured. Please set AI_API_KEY."
	adviceUnreadableMessage    = "AI response could not be understood. Please try again."
	adviceFailedMessage        = "Failed to generate purchase advice."
	adviceQuotaMessage         = "Daily advice limit reached. Please try again tomorrow."

	outcomeOK            = "ok"
	outcomeConfiguration = "configuration"
	outcomeUpstream      = "upstream_contract"
	outcomeInternal      = "internal"
)

// Adviser is the purchase-advice pipeline as seen by the handler.
type Adviser interface {
	Advise(ctx context.Context, req advisor.PurchaseAdviceRequest) (advisor.PurchaseAdviceResponse, advisor.Trace, error)
}

// AdviceQuota limits how many advice calls a user makes per day. Reserve takes
// one slot atomically; Release gives it back when no advice was produced.
type AdviceQuota interface {
	Reserve(ctx context.Context, userID string) (bool, error)
	Release(ctx context.Context, userID string) error
}

type AdviceHandler struct {
	Advisor  Adviser
	Logs     repository.AdviceLogStore
	Quota    AdviceQuota
	Notifier *notifications.Hub
	Provider string
	Model    string
	Now      func() time.Time
}

// NewAdviceHandler создает обработчик покупательских советов.
func NewAdviceHandler(adviser Adviser, logs repository.AdviceLogStore, quota AdviceQuota, notifier *notifications.Hub, provider, model string) *AdviceHandler {
	return &AdviceHandler{
		Advisor:  adviser,
		Logs:     logs,
		Quota:    quota,
		Notifier: notifier,
		Provider: provider,
		Model:    model,
		Now:      time.Now,
	}
}

type PurchaseAdviceRequest struct {
	UserID   string   `json:"userId" validate:"required"`
	Message  string   `json:"message" validate:"required"`
	Price    *float64 `json:"price" validate:"omitnil,gte=0"`
	Category *string  `json:"category" validate:"omitnil,min=1"`
}

func (r PurchaseAdviceRequest) toAdvisor() advisor.PurchaseAdviceRequest {
	req := advisor.PurchaseAdviceRequest{
		UserID:   r.UserID,
		Message:  r.Message,
		Category: r.Category,
	}
	if r.Price != nil {
		price := decimal.NewFromFloat(*r.Price)
		req.Price = &price
	}
	return req
}

// PurchaseAdvice оценивает покупку и возвращает GO, CAREFUL или NOPE.
func (h *AdviceHandler) PurchaseAdvice(c echo.Context) error {
	var req PurchaseAdviceRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	ctx := c.Request().Context()

	reserved := false
	if h.Quota != nil {
		allowed, err := h.Quota.Reserve(ctx, req.UserID)
		switch {
		case err != nil:
			slog.Warn("advice quota check failed", slog.String("user_id", req.UserID), slog.String("error", err.Error()))
		case !allowed:
			metrics.QuotaRejectedTotal.Inc()
			return tooManyRequests(c, adviceQuotaMessage)
		default:
			reserved = true
		}
	}

	started := time.Now()
	response, trace, err := h.Advisor.Advise(ctx, req.toAdvisor())
	h.logAdvice(ctx, req.UserID, trace, response, err)

	if err != nil {
		if reserved {
			h.releaseQuota(ctx, req.UserID)
		}
		status, message, outcome := classifyAdviceError(err)
		metrics.ObserveAdvice(h.Provider, outcome, started)
		slog.Warn("purchase advice failed",
			slog.String("user_id", req.UserID),
			slog.String("error_kind", adviceErrorKind(err)),
			slog.String("error", err.Error()),
		)
		return c.JSON(status, ErrorResponse{Error: message})
	}

	metrics.ObserveAdvice(h.Provider, outcomeOK, started)
	metrics.AdviceStatusTotal.WithLabelValues(string(response.Status)).Inc()
	slog.Info("purchase advice generated", slog.String("user_id", req.UserID), slog.String("status", string(response.Status)))

	if h.Notifier != nil {
		h.Notifier.Publish(req.UserID, notifications.Event{
			Type: notifications.EventAdviceGenerated,
			Data: map[string]interface{}{
				"status":   response.Status,
				"category": trace.Context.Category,
			},
		})
	}

	return c.JSON(http.StatusOK, response)
}

// DailyTip возвращает совет дня для текущей даты UTC.
func (h *AdviceHandler) DailyTip(c echo.Context) error {
	return c.JSON(http.StatusOK, advisor.TipForDate(h.Now()))
}

func (h *AdviceHandler) releaseQuota(ctx context.Context, userID string) {
	if err := h.Quota.Release(context.WithoutCancel(ctx), userID); err != nil {
		slog.Warn("advice quota release failed", slog.String("user_id", userID), slog.String("error", err.Error()))
	}
}

func classifyAdviceError(err error) (int, string, string) {
	var configErr *ai.ConfigurationError
	switch {
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, adviceNotConfiguredMessage, outcomeConfiguration
	case advisor.IsUpstreamContractError(err):
		return http.StatusBadGateway, adviceUnreadableMessage, outcomeUpstream
	default:
		return http.StatusInternalServerError, adviceFailedMessage, outcomeInternal
	}
}

func adviceErrorKind(err error) string {
	var configErr *ai.ConfigurationError
	switch {
	case errors.As(err, &configErr):
		return configErr.Kind
	case errors.Is(err, ai.ErrEmptyResponse):
		return "empty-response"
	case errors.Is(err, advisor.ErrResponseParse):
		return "response-parse"
	case errors.Is(err, advisor.ErrResponseShape):
		return "response-shape"
	case errors.Is(err, advisor.ErrResponseStatus):
		return "response-status"
	default:
		return "internal"
	}
}

func (h *AdviceHandler) logAdvice(ctx context.Context, userID string, trace advisor.Trace, response advisor.PurchaseAdviceResponse, err error) {
	if h.Logs == nil {
		return
	}

	log := models.AdviceLog{
		UserID:        userID,
		Provider:      h.Provider,
		Model:         h.Model,
		PromptVersion: advisor.PromptVersion,
		Prompt:        trace.Prompt.User,
		RawResponse:   trace.Raw,
		Success:       err == nil,
	}

	if trace.Prompt.User != "" {
		log.ContextPayload, _ = json.Marshal(trace.Context)
	}

	if err == nil {
		status := response.Status
		log.Status = &status
		log.ResponsePayload, _ = json.Marshal(response)
	} else {
		kind := adviceErrorKind(err)
		log.ErrorKind = &kind
	}

	if logErr := h.Logs.LogAdvice(ctx, log); logErr != nil {
		slog.Warn("failed to store advice log", slog.String("user_id", userID), slog.String("error", logErr.Error()))
	}
}
