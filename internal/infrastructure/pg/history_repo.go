package pg

import (
	"context"
	"fmt"
	"time"

	"bcvrates/internal/application"
	"bcvrates/internal/domain"

	"github.com/shopspring/decimal"
)

// HistoryRepo mirrors the bounded rate history into rate_history.
type HistoryRepo struct {
	db  *DB
	uow *UnitOfWork
}

var _ application.HistoryMirror = (*HistoryRepo)(nil)

func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db, uow: &UnitOfWork{Pool: db.Pool}}
}

// Append inserts rec and trims the table to the newest domain.MaxHistory rows.
func (r *HistoryRepo) Append(ctx context.Context, rec domain.RateRecord, source string) error {
	observedAt, err := time.Parse(domain.TimestampLayout, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("parse record timestamp: %w", err)
	}
	var bcv *string
	if rec.BCV.Valid {
		s := rec.BCV.Decimal.String()
		bcv = &s
	}
	return r.uow.Do(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.db.Pool)
		if _, err := q.Exec(ctx, `
            INSERT INTO rate_history(rate_date, bcv, source, observed_at)
            VALUES ($1::text::date, $2::text::numeric, $3, $4)`,
			rec.Date, bcv, source, observedAt); err != nil {
			return fmt.Errorf("insert rate history: %w", err)
		}
		if _, err := q.Exec(ctx, `
            DELETE FROM rate_history
            WHERE id NOT IN (SELECT id FROM rate_history ORDER BY id DESC LIMIT $1)`,
			domain.MaxHistory); err != nil {
			return fmt.Errorf("trim rate history: %w", err)
		}
		return nil
	})
}

// List returns up to limit records, oldest first.
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]domain.RateRecord, error) {
	rows, err := conn(ctx, r.db.Pool).Query(ctx, `
        SELECT to_char(rate_date, 'YYYY-MM-DD'), bcv::text, observed_at
        FROM (SELECT * FROM rate_history ORDER BY id DESC LIMIT $1) t
        ORDER BY id ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("query rate history: %w", err)
	}
	defer rows.Close()

	var out []domain.RateRecord
	for rows.Next() {
		var (
			rec        domain.RateRecord
			bcv        *string
			observedAt time.Time
		)
		if err := rows.Scan(&rec.Date, &bcv, &observedAt); err != nil {
			return nil, fmt.Errorf("scan rate history: %w", err)
		}
		if bcv != nil {
			d, err := decimal.NewFromString(*bcv)
			if err != nil {
				return nil, fmt.Errorf("parse bcv %q: %w", *bcv, err)
			}
			rec.BCV = decimal.NewNullDecimal(d)
		}
		rec.Timestamp = observedAt.UTC().Format(domain.TimestampLayout)
		out = append(out, rec)
	}
	return out, rows.Err()
}
