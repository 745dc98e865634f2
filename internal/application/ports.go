package application

import (
	"context"

	"bcvrates/internal/domain"

	"github.com/shopspring/decimal"
)

// RateSource yields a single USD/VES rate.
type RateSource interface {
	Name() string
	Fetch(ctx context.Context) (decimal.Decimal, error)
}

// RatesStore persists RatesFile and its CurrentRateFile projection.
// Load and LoadHistory return ErrNotFound when nothing has been written yet.
// LoadHistory decodes only the history array, so other malformed fields in the
// persisted document do not cost the prior entries.
type RatesStore interface {
	Load(ctx context.Context) (domain.RatesFile, error)
	LoadHistory(ctx context.Context) ([]domain.RateRecord, error)
	Save(ctx context.Context, f domain.RatesFile) error
}

// HistoryMirror receives every appended history record.
type HistoryMirror interface {
	Append(ctx context.Context, rec domain.RateRecord, source string) error
}
