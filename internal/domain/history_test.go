package domain_test

import (
	"fmt"
	"testing"

	"bcvrates/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func records(n int) []domain.RateRecord {
	out := make([]domain.RateRecord, n)
	for i := range out {
		out[i] = domain.RateRecord{
			Date:      fmt.Sprintf("2025-01-%02d", i%28+1),
			BCV:       decimal.NewNullDecimal(decimal.NewFromInt(int64(i))),
			Timestamp: fmt.Sprintf("t%d", i),
		}
	}
	return out
}

func TestAppendHistory_Lengths(t *testing.T) {
	t.Parallel()
	rec := domain.RateRecord{Date: "2025-02-01", Timestamp: "new"}
	for _, n := range []int{0, 1, 15, 29, 30, 31, 60} {
		got := domain.AppendHistory(records(n), rec)
		want := n + 1
		if want > domain.MaxHistory {
			want = domain.MaxHistory
		}
		require.Len(t, got, want, "prior=%d", n)
		require.Equal(t, "new", got[len(got)-1].Timestamp)
	}
}

func TestAppendHistory_EvictsOldestByPosition(t *testing.T) {
	t.Parallel()
	prior := records(30)
	got := domain.AppendHistory(prior, domain.RateRecord{Timestamp: "new"})
	require.Equal(t, "t1", got[0].Timestamp)
	require.Equal(t, "t29", got[28].Timestamp)
	require.Equal(t, "t0", prior[0].Timestamp)
}

func TestRatesFile_Current(t *testing.T) {
	t.Parallel()
	f := domain.RatesFile{
		Timestamp: "2025-01-01T00:00:00Z",
		Date:      "2025-01-01",
		Rates:     domain.RateSnapshot{BCV: decimal.NewNullDecimal(decimal.RequireFromString("36.5"))},
	}
	cur := f.Current()
	require.Equal(t, "2025-01-01T00:00:00Z", cur.Updated)
	require.Equal(t, "2025-01-01", cur.Date)
	require.True(t, cur.BCV.Valid)
	require.True(t, cur.BCV.Decimal.Equal(decimal.RequireFromString("36.50")))
}
