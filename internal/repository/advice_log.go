package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/smartsave-campus/backend/internal/models"
)

type AdviceLogRepository struct {
	db *pgxpool.Pool
}

// NewAdviceLogRepository создает репозиторий журнала советов.
func NewAdviceLogRepository(db *pgxpool.Pool) *AdviceLogRepository {
	return &AdviceLogRepository{db: db}
}

// LogAdvice сохраняет лог запроса совета.
func (r *AdviceLogRepository) LogAdvice(ctx context.Context, log models.AdviceLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO advice_requests
		 (id, user_id, provider, model, prompt_version, prompt, context_payload, response_payload, raw_response, status, success, error_kind)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::jsonb, NULLIF($8, '')::jsonb, $9, $10, $11, $12)`,
		log.ID,
		log.UserID,
		log.Provider,
		log.Model,
		log.PromptVersion,
		log.Prompt,
		string(log.ContextPayload),
		string(log.ResponsePayload),
		log.RawResponse,
		log.Status,
		log.Success,
		log.ErrorKind,
	)
	return err
}
