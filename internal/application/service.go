package application

import (
	"context"
	"errors"
	"fmt"

	"bcvrates/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const runGuardKey = "bcvrates:update:lock"

// SourceResult is the outcome of one source fetch. Err is nil on success.
type SourceResult struct {
	Source string
	Rate   decimal.Decimal
	Err    error
}

func (r SourceResult) OK() bool { return r.Err == nil }

type RateUpdater struct {
	primary   RateSource
	secondary []RateSource
	store     RatesStore
	mirror    HistoryMirror
	guard     RunGuard
	clock     Clock
	idgen     IDGen
	log       *zap.Logger
}

type Option func(*RateUpdater)

func WithClock(c Clock) Option          { return func(s *RateUpdater) { s.clock = c } }
func WithIDGen(g IDGen) Option          { return func(s *RateUpdater) { s.idgen = g } }
func WithMirror(m HistoryMirror) Option { return func(s *RateUpdater) { s.mirror = m } }
func WithRunGuard(g RunGuard) Option    { return func(s *RateUpdater) { s.guard = g } }
func WithLogger(l *zap.Logger) Option   { return func(s *RateUpdater) { s.log = l } }

// NewRateUpdater builds the updater. Secondary sources are tried in the given
// order when the primary source yields nothing.
func NewRateUpdater(primary RateSource, secondary []RateSource, store RatesStore, opts ...Option) *RateUpdater {
	s := &RateUpdater{
		primary:   primary,
		secondary: secondary,
		store:     store,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.idgen == nil {
		s.idgen = defaultIDGen{}
	}
	if s.guard == nil {
		s.guard = NoopRunGuard{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Run performs one full update: primary fetch, secondary fetches, merge and persist.
func (s *RateUpdater) Run(ctx context.Context) (domain.RatesFile, error) {
	log := s.log.With(zap.String("run_id", s.idgen.New()))

	ok, err := s.guard.TryReserve(ctx, runGuardKey)
	if err != nil {
		return domain.RatesFile{}, fmt.Errorf("acquire run guard: %w", err)
	}
	if !ok {
		return domain.RatesFile{}, ErrRunInProgress
	}
	defer func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), runGuardKey); err != nil {
			log.Warn("run_guard_release_failed", zap.Error(err))
		}
	}()

	log.Info("update_started")
	primary := s.FetchPrimary(ctx)
	secondary := s.FetchSecondary(ctx)
	f, err := s.MergeAndPersist(ctx, primary, secondary)
	if err != nil {
		return domain.RatesFile{}, err
	}
	log.Info("update_done",
		zap.Stringer("bcv", nullString(f.Rates.BCV)),
		zap.String("source", f.Rates.Source),
		zap.Int("history", len(f.History)),
	)
	return f, nil
}

// FetchPrimary never fails: a source error is logged and carried in the result.
func (s *RateUpdater) FetchPrimary(ctx context.Context) SourceResult {
	res := s.fetch(ctx, s.primary)
	if !res.OK() {
		s.logFetchFailure("primary_fetch_failed", res)
	}
	return res
}

// FetchSecondary queries every secondary source independently, in order.
func (s *RateUpdater) FetchSecondary(ctx context.Context) []SourceResult {
	out := make([]SourceResult, 0, len(s.secondary))
	for _, src := range s.secondary {
		res := s.fetch(ctx, src)
		if !res.OK() {
			s.logFetchFailure("secondary_fetch_failed", res)
		}
		out = append(out, res)
	}
	return out
}

func (s *RateUpdater) fetch(ctx context.Context, src RateSource) (res SourceResult) {
	res.Source = src.Name()
	defer func() {
		if r := recover(); r != nil {
			res.Rate = decimal.Decimal{}
			res.Err = domain.NewFetchError(res.Source, domain.FetchErrorParse, fmt.Errorf("panic: %v", r))
		}
	}()
	rate, err := src.Fetch(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	res.Rate = rate
	return res
}

func (s *RateUpdater) logFetchFailure(event string, res SourceResult) {
	kind, _ := domain.KindOf(res.Err)
	s.log.Warn(event,
		zap.String("source", res.Source),
		zap.String("kind", string(kind)),
		zap.Error(res.Err),
	)
}

// MergeAndPersist builds the new RatesFile from the fetch results and the
// previously persisted history, then writes it.
func (s *RateUpdater) MergeAndPersist(ctx context.Context, primary SourceResult, secondary []SourceResult) (domain.RatesFile, error) {
	snap := domain.NewSnapshot(s.clock.Now())
	all := map[string]decimal.NullDecimal{primary.Source: {}}

	if primary.OK() {
		snap.BCV = decimal.NewNullDecimal(primary.Rate)
		snap.Source = domain.SourceLabel(primary.Source)
		all[primary.Source] = snap.BCV
	}
	for _, r := range secondary {
		if !r.OK() {
			continue
		}
		all[r.Source] = decimal.NewNullDecimal(r.Rate)
		if !snap.BCV.Valid {
			snap.BCV = decimal.NewNullDecimal(r.Rate)
			snap.Source = domain.SourceLabel(r.Source)
		}
	}

	history, err := s.store.LoadHistory(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
	default:
		history = nil
		s.log.Warn("prior_rates_unreadable", zap.Error(err))
	}

	rec := snap.Record()
	f := domain.RatesFile{
		Timestamp: snap.Timestamp,
		Date:      snap.Date,
		Rates:     snap,
		AllRates:  all,
		History:   domain.AppendHistory(history, rec),
	}
	if err := s.store.Save(ctx, f); err != nil {
		return domain.RatesFile{}, fmt.Errorf("persist rates: %w", err)
	}

	if s.mirror != nil {
		if err := s.mirror.Append(ctx, rec, snap.Source); err != nil {
			s.log.Warn("history_mirror_failed", zap.Error(err))
		}
	}
	return f, nil
}

type nullString decimal.NullDecimal

func (n nullString) String() string {
	if !n.Valid {
		return "null"
	}
	return n.Decimal.String()
}
