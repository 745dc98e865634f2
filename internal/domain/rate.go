package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// rates are consumed by a JS calculator that expects plain numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	TimestampLayout = time.RFC3339Nano
	DateLayout      = "2006-01-02"
)

// RateSnapshot is the outcome of one update run.
type RateSnapshot struct {
	Timestamp  string              `json:"timestamp"`
	Date       string              `json:"date"`
	BCV        decimal.NullDecimal `json:"bcv"`
	Source     string              `json:"source"`
	LastUpdate string              `json:"last_update"`
}

// RateRecord is a single history entry.
type RateRecord struct {
	Date      string              `json:"date"`
	BCV       decimal.NullDecimal `json:"bcv"`
	Timestamp string              `json:"timestamp"`
}

// RatesFile is the full document persisted as data/rates.json.
type RatesFile struct {
	Timestamp string                         `json:"timestamp"`
	Date      string                         `json:"date"`
	Rates     RateSnapshot                   `json:"rates"`
	AllRates  map[string]decimal.NullDecimal `json:"all_rates"`
	History   []RateRecord                   `json:"history"`
}

// CurrentRateFile is the projection persisted as data/current_rate.json.
type CurrentRateFile struct {
	BCV     decimal.NullDecimal `json:"bcv"`
	Updated string              `json:"updated"`
	Date    string              `json:"date"`
}

func NewSnapshot(at time.Time) RateSnapshot {
	at = at.UTC()
	ts := at.Format(TimestampLayout)
	return RateSnapshot{
		Timestamp:  ts,
		Date:       at.Format(DateLayout),
		Source:     SourceLabelAlternative,
		LastUpdate: ts,
	}
}

func (s RateSnapshot) Record() RateRecord {
	return RateRecord{Date: s.Date, BCV: s.BCV, Timestamp: s.Timestamp}
}

func (f RatesFile) Current() CurrentRateFile {
	return CurrentRateFile{BCV: f.Rates.BCV, Updated: f.Timestamp, Date: f.Date}
}
