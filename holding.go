package investing

// Holding binds everything known about one instrument: its description, its
// reconstructed position ledger and its dividend history. It consumes the
// instrument's trade stream and produces a HoldingSummary.
type Holding struct {
	info        SecurityInfo
	ledger      *PositionLedger
	dividends   History[float64]
	withholding float64
}

// HoldingSummary is the per-instrument result record consumed by presentation
// collaborators.
type HoldingSummary struct {
	Ticker     string
	Name       string
	TSR        Percent
	CAGR       Percent
	Current    bool              // still held today
	Value      Money             // current market value, home currency
	Weight     Percent           // share of the portfolio total, set by the aggregator
	Periods    []OwnershipPeriod // most recent first
	LatestBuy  Date
	LatestSell Date
}

// NewHolding creates a holding for one instrument.
func NewHolding(info SecurityInfo, splits SplitList, dividends History[float64], withholding float64) *Holding {
	return &Holding{
		info:        info,
		ledger:      NewPositionLedger(info.Ticker, splits),
		dividends:   dividends,
		withholding: withholding,
	}
}

// Ticker returns the instrument's ticker.
func (h *Holding) Ticker() string { return h.info.Ticker }

// Currency returns the instrument's trading currency.
func (h *Holding) Currency() string { return h.info.Currency }

// Category returns the instrument's asset class.
func (h *Holding) Category() string { return h.info.Category }

// Held reports whether the position is currently nonzero.
func (h *Holding) Held() bool { return h.ledger.Held() }

// Apply consumes one trade of this instrument, in chronological order.
func (h *Holding) Apply(t Trade) error { return h.ledger.Apply(t) }

// CurrentQuantity returns the quantity held as of today, split-adjusted from
// the last recorded snapshot.
func (h *Holding) CurrentQuantity(today Date) Quantity {
	return h.ledger.carried(today)
}

// Summarize computes the Modified Dietz returns of the holding. For a
// still-open position latestPrice (in the instrument's currency) values the
// final synthetic mark-to-market outflow; it is ignored for closed holdings.
//
// The returned Value is in the instrument currency; the portfolio aggregator
// converts it to the home currency and fills in the weight.
func (h *Holding) Summarize(today Date, latestPrice float64) (*HoldingSummary, error) {
	inflows := h.ledger.Inflows()
	outflows := h.ledger.Outflows()
	outflows = append(outflows, AttributeDividends(h.ledger, &h.dividends, h.info.Currency, h.withholding)...)

	var value Money
	if h.Held() {
		quantity := h.CurrentQuantity(today)
		value = M(latestPrice, h.info.Currency).Mul(quantity)
		outflows = append(outflows, Flow{Date: today, Value: value})
	}

	result, err := ModifiedDietz(h.info.Ticker, h.ledger.Periods(), inflows, outflows, today)
	if err != nil {
		return nil, err
	}

	periods := h.ledger.Periods()
	for i, j := 0, len(periods)-1; i < j; i, j = i+1, j-1 {
		periods[i], periods[j] = periods[j], periods[i]
	}

	return &HoldingSummary{
		Ticker:     h.info.Ticker,
		Name:       h.info.Name,
		TSR:        result.TSR,
		CAGR:       result.CAGR,
		Current:    h.Held(),
		Value:      value,
		Periods:    periods,
		LatestBuy:  h.ledger.LatestBuy(),
		LatestSell: h.ledger.LatestSell(),
	}, nil
}
