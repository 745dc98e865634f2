package domain

// MaxHistory bounds RatesFile.History.
const MaxHistory = 30

// AppendHistory keeps the newest MaxHistory-1 entries of prior by position and
// appends rec. The input slice is never modified.
func AppendHistory(prior []RateRecord, rec RateRecord) []RateRecord {
	keep := prior
	if n := len(keep); n > MaxHistory-1 {
		keep = keep[n-(MaxHistory-1):]
	}
	out := make([]RateRecord, 0, len(keep)+1)
	out = append(out, keep...)
	return append(out, rec)
}
