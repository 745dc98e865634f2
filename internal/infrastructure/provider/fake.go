package provider

import (
	"context"

	"bcvrates/internal/application"
	"bcvrates/internal/domain"

	"github.com/shopspring/decimal"
)

// Ensure Fake implements application.RateSource.
var _ application.RateSource = (*Fake)(nil)

// Fake returns a fixed rate, or a no_match failure when rate is empty.
type Fake struct {
	name string
	rate string
}

func NewFake(name, rate string) *Fake { return &Fake{name: name, rate: rate} }

func (f *Fake) Name() string { return f.name }

func (f *Fake) Fetch(context.Context) (decimal.Decimal, error) {
	if f.rate == "" {
		return decimal.Decimal{}, domain.NewFetchError(f.name, domain.FetchErrorNoMatch, domain.ErrNoRate)
	}
	d, err := decimal.NewFromString(f.rate)
	if err != nil {
		return decimal.Decimal{}, domain.NewFetchError(f.name, domain.FetchErrorParse, err)
	}
	return d, nil
}
