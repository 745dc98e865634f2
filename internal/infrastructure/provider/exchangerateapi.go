package provider

import (
	"context"
	"errors"

	"bcvrates/internal/application"
	"bcvrates/internal/domain"
	"bcvrates/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

const DefaultExchangeRateAPIURL = "https://api.exchangerate-api.com/v4/latest/USD"

type ExchangeRateAPI struct {
	URL    string
	Client *httpx.Client
}

var _ application.RateSource = (*ExchangeRateAPI)(nil)

type xrLatestResp struct {
	Base  string `json:"base"`
	Rates struct {
		VES *decimal.Decimal `json:"VES"`
	} `json:"rates"`
}

func (p *ExchangeRateAPI) Name() string { return domain.SourceExchangeRateAPI }

func (p *ExchangeRateAPI) Fetch(ctx context.Context) (decimal.Decimal, error) {
	var body xrLatestResp
	if err := p.Client.GetJSON(ctx, p.URL, &body); err != nil {
		return decimal.Decimal{}, fetchError(p.Name(), err)
	}
	return positive(p.Name(), body.Rates.VES, "rates.VES")
}

func positive(source string, v *decimal.Decimal, field string) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Decimal{}, domain.NewFetchError(source, domain.FetchErrorParse, errors.New("missing "+field))
	}
	if !v.IsPositive() {
		return decimal.Decimal{}, domain.NewFetchError(source, domain.FetchErrorParse, errors.New("non-positive "+field))
	}
	return *v, nil
}
