// Package records writes captured leads and issued quotes to Postgres.
package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrQuoteNotFound        = errors.New("QUOTE_NOT_FOUND")
)

// Schema creates the tables used by Repository.
const Schema = `
CREATE TABLE IF NOT EXISTS quotes (
	id           UUID PRIMARY KEY,
	quote_number TEXT NOT NULL UNIQUE,
	session_id   TEXT NOT NULL,
	industry_id  TEXT NOT NULL,
	budget_range TEXT NOT NULL,
	style_id     TEXT NOT NULL,
	module_ids   TEXT[] NOT NULL,
	calculation  JSONB NOT NULL,
	valid_until  TIMESTAMPTZ NOT NULL,
	status       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS leads (
	id         UUID PRIMARY KEY,
	quote_id   UUID REFERENCES quotes(id),
	session_id TEXT NOT NULL,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL,
	company    TEXT,
	role       TEXT NOT NULL,
	notes      TEXT,
	source     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS leads_email_idx ON leads (email);
`

type Repository struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewRepository(db *sql.DB, log logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "records"}),
		now:    time.Now,
	}
}

// EnsureSchema creates missing tables.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveQuote inserts a quote and returns its id. Saving a quote number that
// already exists returns the stored id instead.
func (r *Repository) SaveQuote(ctx context.Context, q models.QuoteRecord) (string, error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = r.now().UTC()
	}
	if q.Status == "" {
		q.Status = models.QuoteDraft
	}

	calculationJSON, err := json.Marshal(q.Calculation)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal calculation: %v", ErrDatabaseInsertFailed, err)
	}

	var id string
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO quotes (
			id, quote_number, session_id, industry_id, budget_range, style_id,
			module_ids, calculation, valid_until, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (quote_number) DO UPDATE SET quote_number = EXCLUDED.quote_number
		RETURNING id`,
		q.ID,
		q.QuoteNumber,
		q.SessionID,
		q.IndustryID,
		string(q.BudgetRange),
		q.StyleID,
		pq.Array(q.ModuleIDs),
		calculationJSON,
		q.ValidUntil,
		string(q.Status),
		q.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%w: quote insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	r.logger.Info("quote record saved", map[string]interface{}{
		"quoteId":     id,
		"quoteNumber": q.QuoteNumber,
		"total":       q.Calculation.Total,
	})
	return id, nil
}

// SaveLead inserts a lead and returns its id.
func (r *Repository) SaveLead(ctx context.Context, l models.LeadRecord) (string, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = r.now().UTC()
	}
	if l.Source == "" {
		l.Source = models.SourceQuoteTool
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO leads (
			id, quote_id, session_id, name, email, phone, company, role, notes, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID,
		nullString(l.QuoteID),
		l.SessionID,
		l.Name,
		l.Email,
		l.Phone,
		nullString(l.Company),
		string(l.Role),
		nullString(l.Notes),
		string(l.Source),
		l.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("%w: lead insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	r.logger.Info("lead record saved", map[string]interface{}{
		"leadId":    l.ID,
		"sessionId": l.SessionID,
		"source":    l.Source,
	})
	return l.ID, nil
}

// QuoteByNumber loads a stored quote.
func (r *Repository) QuoteByNumber(ctx context.Context, number string) (*models.QuoteRecord, error) {
	var (
		q               models.QuoteRecord
		budget, status  string
		calculationJSON []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, quote_number, session_id, industry_id, budget_range, style_id,
		       module_ids, calculation, valid_until, status, created_at
		FROM quotes WHERE quote_number = $1`, number).Scan(
		&q.ID, &q.QuoteNumber, &q.SessionID, &q.IndustryID, &budget, &q.StyleID,
		pq.Array(&q.ModuleIDs), &calculationJSON, &q.ValidUntil, &status, &q.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("quote lookup failed: %w", err)
	}

	if err := json.Unmarshal(calculationJSON, &q.Calculation); err != nil {
		return nil, fmt.Errorf("failed to decode calculation of %s: %w", number, err)
	}
	q.BudgetRange = models.BudgetRange(budget)
	q.Status = models.QuoteStatus(status)
	return &q, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
