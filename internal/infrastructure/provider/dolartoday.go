package provider

import (
	"context"

	"bcvrates/internal/application"
	"bcvrates/internal/domain"
	"bcvrates/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

const DefaultDolarTodayURL = "https://s3.amazonaws.com/dolartoday/data.json"

type DolarToday struct {
	URL    string
	Client *httpx.Client
}

var _ application.RateSource = (*DolarToday)(nil)

type dolarTodayResp struct {
	USD struct {
		DolarToday *decimal.Decimal `json:"dolartoday"`
	} `json:"USD"`
}

func (p *DolarToday) Name() string { return domain.SourceDolarToday }

func (p *DolarToday) Fetch(ctx context.Context) (decimal.Decimal, error) {
	var body dolarTodayResp
	if err := p.Client.GetJSON(ctx, p.URL, &body); err != nil {
		return decimal.Decimal{}, fetchError(p.Name(), err)
	}
	return positive(p.Name(), body.USD.DolarToday, "USD.dolartoday")
}
