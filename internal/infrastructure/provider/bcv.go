package provider

import (
	"bytes"
	"context"
	"fmt"

	"bcvrates/internal/application"
	"bcvrates/internal/domain"
	"bcvrates/internal/infrastructure/httpx"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

const DefaultBCVURL = "https://www.bcv.org.ve/"

// BCVScraper reads the official rate from the BCV home page.
type BCVScraper struct {
	URL    string
	Client *httpx.Client
	// Extractors defaults to DefaultExtractors.
	Extractors []Extractor
}

var _ application.RateSource = (*BCVScraper)(nil)

func (p *BCVScraper) Name() string { return domain.SourceBCV }

func (p *BCVScraper) Fetch(ctx context.Context) (decimal.Decimal, error) {
	body, err := p.Client.GetHTML(ctx, p.URL)
	if err != nil {
		return decimal.Decimal{}, fetchError(p.Name(), err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return decimal.Decimal{}, domain.NewFetchError(p.Name(), domain.FetchErrorParse, fmt.Errorf("parse html: %w", err))
	}
	extractors := p.Extractors
	if len(extractors) == 0 {
		extractors = DefaultExtractors
	}
	rate, ok := ExtractRate(doc, extractors...)
	if !ok {
		return decimal.Decimal{}, domain.NewFetchError(p.Name(), domain.FetchErrorNoMatch, domain.ErrNoRate)
	}
	return rate, nil
}
