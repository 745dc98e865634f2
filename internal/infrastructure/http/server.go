package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bcvrates/internal/domain"
)

// RatesReader is the read side of the file store.
type RatesReader interface {
	Load(ctx context.Context) (domain.RatesFile, error)
	LoadCurrent(ctx context.Context) (domain.CurrentRateFile, error)
}

// HistoryReader lists the newest history records, oldest first.
type HistoryReader interface {
	List(ctx context.Context, limit int) ([]domain.RateRecord, error)
}

type Server struct {
	rates   RatesReader
	history HistoryReader
	ping    func(ctx context.Context) error
}

func NewServer(rates RatesReader) *Server {
	s := &Server{rates: rates}
	s.ping = func(ctx context.Context) error {
		_, err := rates.LoadCurrent(ctx)
		return err
	}
	return s
}

// SetReadyCheck overrides the readiness probe.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

// SetHistoryReader serves /history from h instead of rates.json.
func (s *Server) SetHistoryReader(h HistoryReader) { s.history = h }

func (s *Server) GetCurrentRate(w http.ResponseWriter, r *http.Request) {
	cur, err := s.rates.LoadCurrent(r.Context())
	if err != nil {
		s.loadFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) GetRates(w http.ResponseWriter, r *http.Request) {
	f, err := s.rates.Load(r.Context())
	if err != nil {
		s.loadFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := domain.MaxHistory
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	h, err := s.loadHistory(r.Context(), limit)
	if err != nil {
		s.loadFailed(w, err)
		return
	}
	if h == nil {
		h = []domain.RateRecord{}
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) loadHistory(ctx context.Context, limit int) ([]domain.RateRecord, error) {
	if s.history != nil {
		h, err := s.history.List(ctx, limit)
		if err != nil {
			return nil, err
		}
		if len(h) == 0 {
			return nil, domain.ErrNotFound
		}
		return h, nil
	}
	f, err := s.rates.Load(ctx)
	if err != nil {
		return nil, err
	}
	h := f.History
	if len(h) > limit {
		h = h[len(h)-limit:]
	}
	return h, nil
}

func (s *Server) loadFailed(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no rates published yet")
		return
	}
	writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Code: status, Message: msg})
}
