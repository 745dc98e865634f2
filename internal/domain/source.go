package domain

// Source names are the keys used in RatesFile.AllRates.
const (
	SourceBCV             = "bcv_official"
	SourceExchangeRateAPI = "exchangerate_api"
	SourceDolarToday      = "dolartoday"
)

const (
	SourceLabelBCV         = "BCV Official"
	SourceLabelAlternative = "Alternative"
)

var sourceLabels = map[string]string{
	SourceBCV:             SourceLabelBCV,
	SourceExchangeRateAPI: "ExchangeRate-API",
	SourceDolarToday:      "DolarToday",
}

// SourceLabel returns the human-readable label written to rates.source.
func SourceLabel(source string) string {
	if l, ok := sourceLabels[source]; ok {
		return l
	}
	return source
}
