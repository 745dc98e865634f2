package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"bcvrates/internal/application"
	"bcvrates/internal/domain"
)

const (
	RatesFileName   = "rates.json"
	CurrentFileName = "current_rate.json"
)

// Store keeps rates.json and current_rate.json under Dir.
type Store struct {
	Dir string
}

var _ application.RatesStore = (*Store)(nil)

func New(dir string) *Store { return &Store{Dir: dir} }

func (s *Store) RatesPath() string   { return filepath.Join(s.Dir, RatesFileName) }
func (s *Store) CurrentPath() string { return filepath.Join(s.Dir, CurrentFileName) }

func (s *Store) Load(_ context.Context) (domain.RatesFile, error) {
	var f domain.RatesFile
	if err := readJSON(s.RatesPath(), &f); err != nil {
		return domain.RatesFile{}, err
	}
	return f, nil
}

// LoadHistory decodes only the history array of rates.json. Other writers may
// leave non-numeric values in rates or all_rates; those must not drop history.
func (s *Store) LoadHistory(_ context.Context) ([]domain.RateRecord, error) {
	var doc struct {
		History []domain.RateRecord `json:"history"`
	}
	if err := readJSON(s.RatesPath(), &doc); err != nil {
		return nil, err
	}
	return doc.History, nil
}

func (s *Store) LoadCurrent(_ context.Context) (domain.CurrentRateFile, error) {
	var c domain.CurrentRateFile
	if err := readJSON(s.CurrentPath(), &c); err != nil {
		return domain.CurrentRateFile{}, err
	}
	return c, nil
}

// Save writes the full document first and the projection second.
func (s *Store) Save(_ context.Context, f domain.RatesFile) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if f.History == nil {
		f.History = []domain.RateRecord{}
	}
	if err := writeJSON(s.RatesPath(), f); err != nil {
		return err
	}
	return writeJSON(s.CurrentPath(), f.Current())
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
