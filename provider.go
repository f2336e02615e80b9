package investing

// SecurityInfo is the static description of an instrument as known by the
// market-data provider.
type SecurityInfo struct {
	Ticker   string
	Name     string
	Currency string
	Category string // asset class, e.g. "Common Stock" or "ETF"
}

// MarketProvider is the market-data collaborator the engine consumes. All
// lookups are synchronous; implementations are expected to cache aggressively
// since the engine treats them as memoizable pure functions of their key.
type MarketProvider interface {
	// Describe returns the instrument's static description.
	Describe(ticker string) (SecurityInfo, error)

	// CurrentPrice returns the latest market price of the instrument in its
	// own currency. The engine surfaces a failure as a *QuoteUnavailableError
	// scoped to the instrument.
	CurrentPrice(ticker string) (float64, error)

	// Splits returns the instrument's split history, ordered by date.
	Splits(ticker string) (SplitList, error)

	// Dividends returns the instrument's per-share dividend history, gross of
	// withholding, with amounts as declared on each ex-date.
	Dividends(ticker string) (History[float64], error)

	// ExchangeRate returns the value of one unit of the given currency in USD.
	ExchangeRate(currency string) (float64, error)

	// PriceHistory returns the instrument's daily open and close prices from
	// the given date onward.
	PriceHistory(ticker string, from Date) (open, close History[float64], err error)
}
