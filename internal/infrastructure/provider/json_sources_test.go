package provider_test

import (
	"context"
	"testing"

	"bcvrates/internal/domain"
	"bcvrates/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

const sampleXR = `{
  "base": "USD",
  "date": "2025-03-14",
  "time_last_updated": 1741910401,
  "rates": { "USD": 1, "EUR": 0.92, "VES": 36.02 }
}`

func TestExchangeRateAPI_HappyPath(t *testing.T) {
	t.Parallel()
	p := &provider.ExchangeRateAPI{URL: provider.DefaultExchangeRateAPIURL, Client: httpClient(sampleXR, 200)}
	rate, err := p.Fetch(context.Background())
	require.NoError(t, err)
	requireDecimal(t, "36.02", rate)
	require.Equal(t, domain.SourceExchangeRateAPI, p.Name())
}

func TestExchangeRateAPI_MissingVES(t *testing.T) {
	t.Parallel()
	p := &provider.ExchangeRateAPI{URL: provider.DefaultExchangeRateAPIURL, Client: httpClient(`{"rates":{"EUR":0.92}}`, 200)}
	_, err := p.Fetch(context.Background())
	require.True(t, domain.IsKind(err, domain.FetchErrorParse))
}

func TestExchangeRateAPI_BadJSON(t *testing.T) {
	t.Parallel()
	p := &provider.ExchangeRateAPI{URL: provider.DefaultExchangeRateAPIURL, Client: httpClient(`<html>`, 200)}
	_, err := p.Fetch(context.Background())
	require.True(t, domain.IsKind(err, domain.FetchErrorParse))
}

func TestDolarToday_HappyPath(t *testing.T) {
	t.Parallel()
	body := `{"_timestamp":{"fecha":"hoy"},"USD":{"transferencia":40.1,"dolartoday":41.25,"sicad2":"n/a"}}`
	p := &provider.DolarToday{URL: provider.DefaultDolarTodayURL, Client: httpClient(body, 200)}
	rate, err := p.Fetch(context.Background())
	require.NoError(t, err)
	requireDecimal(t, "41.25", rate)
}

func TestDolarToday_NonPositive(t *testing.T) {
	t.Parallel()
	p := &provider.DolarToday{URL: provider.DefaultDolarTodayURL, Client: httpClient(`{"USD":{"dolartoday":0}}`, 200)}
	_, err := p.Fetch(context.Background())
	require.True(t, domain.IsKind(err, domain.FetchErrorParse))
}

func TestDolarToday_Forbidden(t *testing.T) {
	t.Parallel()
	p := &provider.DolarToday{URL: provider.DefaultDolarTodayURL, Client: httpClient(`AccessDenied`, 403)}
	_, err := p.Fetch(context.Background())
	require.True(t, domain.IsKind(err, domain.FetchErrorStatus))
}

func TestFake(t *testing.T) {
	t.Parallel()
	rate, err := provider.NewFake(domain.SourceBCV, "36.5").Fetch(context.Background())
	require.NoError(t, err)
	requireDecimal(t, "36.5", rate)

	_, err = provider.NewFake(domain.SourceBCV, "").Fetch(context.Background())
	require.True(t, domain.IsKind(err, domain.FetchErrorNoMatch))
}
