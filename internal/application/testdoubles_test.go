package application

import (
	"context"
	"errors"
	"time"

	"bcvrates/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrDisk = errors.New("disk full")
)

type fakeSource struct {
	name  string
	rate  string
	err   error
	calls int
	panic bool
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(context.Context) (decimal.Decimal, error) {
	f.calls++
	if f.panic {
		panic("boom")
	}
	if f.err != nil {
		return decimal.Decimal{}, f.err
	}
	return decimal.RequireFromString(f.rate), nil
}

func okSource(name, rate string) *fakeSource { return &fakeSource{name: name, rate: rate} }

func failSource(name string, kind domain.FetchErrorKind) *fakeSource {
	return &fakeSource{name: name, err: domain.NewFetchError(name, kind, errors.New("unavailable"))}
}

type memStore struct {
	prior   *domain.RatesFile
	loadErr error
	saveErr error
	saved   []domain.RatesFile
}

func (m *memStore) Load(context.Context) (domain.RatesFile, error) {
	if m.loadErr != nil {
		return domain.RatesFile{}, m.loadErr
	}
	if m.prior == nil {
		return domain.RatesFile{}, ErrNotFound
	}
	return *m.prior, nil
}

func (m *memStore) LoadHistory(ctx context.Context) ([]domain.RateRecord, error) {
	f, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	return f.History, nil
}

func (m *memStore) Save(_ context.Context, f domain.RatesFile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, f)
	return nil
}

type fakeMirror struct {
	recs    []domain.RateRecord
	sources []string
	err     error
}

func (f *fakeMirror) Append(_ context.Context, rec domain.RateRecord, source string) error {
	if f.err != nil {
		return f.err
	}
	f.recs = append(f.recs, rec)
	f.sources = append(f.sources, source)
	return nil
}

type fakeGuard struct {
	held     map[string]bool
	err      error
	released int
}

func (f *fakeGuard) TryReserve(_ context.Context, k string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.held == nil {
		f.held = map[string]bool{}
	}
	if f.held[k] {
		return false, nil
	}
	f.held[k] = true
	return true, nil
}

func (f *fakeGuard) Release(_ context.Context, k string) error {
	delete(f.held, k)
	f.released++
	return nil
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type fixedID string

func (f fixedID) New() string { return string(f) }
