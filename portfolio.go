package investing

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

// CashPosition is an uninvested cash balance held next to the securities.
type CashPosition struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Portfolio is the return computation engine: it reconstructs holdings from
// the raw trade ledger, summarizes each one, and aggregates them into a
// portfolio-level view. All market lookups go through one provider and one
// exchange-rate cache constructed for the run.
type Portfolio struct {
	provider    MarketProvider
	rates       *RateCache
	withholding float64
	cash        []CashPosition
}

// Option configures a Portfolio.
type Option func(*Portfolio)

// WithCash declares uninvested cash balances to include in the total value.
func WithCash(cash ...CashPosition) Option {
	return func(p *Portfolio) { p.cash = append(p.cash, cash...) }
}

// WithWithholdingRate overrides the dividend withholding tax rate.
func WithWithholdingRate(rate float64) Option {
	return func(p *Portfolio) { p.withholding = rate }
}

// NewPortfolio creates an engine backed by the given market-data provider.
func NewPortfolio(provider MarketProvider, opts ...Option) *Portfolio {
	p := &Portfolio{
		provider:    provider,
		rates:       NewRateCache(provider),
		withholding: DefaultWithholdingRate,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Report is the aggregated outcome of one engine run.
type Report struct {
	Date       Date
	Current    []*HoldingSummary // still-held instruments, latest buy first
	Historical []*HoldingSummary // closed instruments, latest sell first
	TotalValue Money             // securities plus cash, home currency
	Allocation map[string]Percent
}

// Compute reconstructs every holding from the raw trade rows and aggregates
// their summaries as of today.
//
// A malformed action aborts the run: the ledger cannot be trusted. All other
// failures are instrument-scoped: the instrument is logged and excluded from
// the report, and unrelated instruments are unaffected.
func (p *Portfolio) Compute(rows []RawTransaction, today Date) (*Report, error) {
	trades, err := CombineAndSort(rows)
	if err != nil {
		return nil, err
	}

	holdings, err := p.buildHoldings(trades)
	if err != nil {
		return nil, err
	}

	report := &Report{Date: today, Allocation: make(map[string]Percent)}
	var summaries []*HoldingSummary
	categories := make(map[*HoldingSummary]string)
	for _, h := range holdings {
		summary, err := p.summarize(h, today)
		if err != nil {
			log.Printf("%s: excluded from report: %v", h.Ticker(), err)
			continue
		}
		summaries = append(summaries, summary)
		categories[summary] = h.Category()
	}

	// total value: current holdings in home currency, plus cash.
	total := M(0, HomeCurrency)
	for _, s := range summaries {
		total = total.Add(s.Value)
	}
	cashTotal := M(0, HomeCurrency)
	for _, c := range p.cash {
		rate, err := p.rates.Rate(c.Currency)
		if err != nil {
			return nil, fmt.Errorf("cannot value %s cash position: %w", c.Currency, err)
		}
		cashTotal = cashTotal.Add(M(c.Amount*rate, HomeCurrency))
	}
	total = total.Add(cashTotal)
	report.TotalValue = total

	// weights and allocation are only meaningful against a nonzero total.
	for _, s := range summaries {
		if !total.IsZero() && s.Current {
			s.Weight = Percent(100 * s.Value.AsFloat() / total.AsFloat())
			category := categories[s]
			if category == "" {
				category = "Other"
			}
			report.Allocation[category] += s.Weight
		}
		if s.Current {
			report.Current = append(report.Current, s)
		} else {
			report.Historical = append(report.Historical, s)
		}
	}
	if !total.IsZero() && !cashTotal.IsZero() {
		report.Allocation["Cash"] = Percent(100 * cashTotal.AsFloat() / total.AsFloat())
	}

	sort.SliceStable(report.Current, func(i, j int) bool {
		return report.Current[i].LatestBuy.After(report.Current[j].LatestBuy)
	})
	sort.SliceStable(report.Historical, func(i, j int) bool {
		return report.Historical[i].LatestSell.After(report.Historical[j].LatestSell)
	})
	return report, nil
}

// buildHoldings replays the sorted trade stream into one holding per
// instrument, in order of first appearance. Instruments whose market data
// cannot be fetched or whose ledger is inconsistent are logged and skipped.
func (p *Portfolio) buildHoldings(trades []Trade) ([]*Holding, error) {
	byTicker := make(map[string]*Holding)
	failed := make(map[string]bool)
	var holdings []*Holding

	for _, t := range trades {
		if failed[t.Ticker] {
			continue
		}
		h, ok := byTicker[t.Ticker]
		if !ok {
			var err error
			h, err = p.newHolding(t.Ticker)
			if err != nil {
				log.Printf("%s: excluded from report: %v", t.Ticker, err)
				failed[t.Ticker] = true
				continue
			}
			byTicker[t.Ticker] = h
			holdings = append(holdings, h)
		}
		if err := h.Apply(t); err != nil {
			var malformed *MalformedActionError
			if errors.As(err, &malformed) {
				// corrupt ledger, not an instrument-local problem.
				return nil, err
			}
			log.Printf("%s: excluded from report: %v", t.Ticker, err)
			failed[t.Ticker] = true
		}
	}

	kept := holdings[:0]
	for _, h := range holdings {
		if !failed[h.Ticker()] {
			kept = append(kept, h)
		}
	}
	return kept, nil
}

func (p *Portfolio) newHolding(ticker string) (*Holding, error) {
	info, err := p.provider.Describe(ticker)
	if err != nil {
		return nil, fmt.Errorf("cannot describe %s: %w", ticker, err)
	}
	splits, err := p.provider.Splits(ticker)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch splits for %s: %w", ticker, err)
	}
	dividends, err := p.provider.Dividends(ticker)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch dividends for %s: %w", ticker, err)
	}
	return NewHolding(info, splits, dividends, p.withholding), nil
}

// summarize fetches the data a summary needs (quote and exchange rate, for a
// still-open position) and converts the value to the home currency.
func (p *Portfolio) summarize(h *Holding, today Date) (*HoldingSummary, error) {
	var price float64
	if h.Held() {
		var err error
		price, err = p.provider.CurrentPrice(h.Ticker())
		if err != nil {
			return nil, &QuoteUnavailableError{Ticker: h.Ticker(), Err: err}
		}
	}
	summary, err := h.Summarize(today, price)
	if err != nil {
		return nil, err
	}
	if summary.Current {
		rate, err := p.rates.Rate(h.Currency())
		if err != nil {
			return nil, fmt.Errorf("cannot convert %s value: %w", h.Currency(), err)
		}
		summary.Value = summary.Value.Convert(rate, HomeCurrency)
	}
	return summary, nil
}

// TotalReturn chains the externally supplied valuations with the freshly
// computed current total value into the portfolio's time-weighted return.
func (p *Portfolio) TotalReturn(valuations []Valuation, report *Report) *TotalReturn {
	return ComputeTWR(valuations, report.TotalValue.AsFloat(), report.Date)
}

// Benchmark aligns a reference instrument onto the total-return date grid.
func (p *Portfolio) Benchmark(ticker string, total *TotalReturn) (*BenchmarkSummary, error) {
	info, err := p.provider.Describe(ticker)
	if err != nil {
		return nil, fmt.Errorf("cannot describe benchmark %s: %w", ticker, err)
	}
	_, closes, err := p.provider.PriceHistory(ticker, total.Start)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch benchmark history for %s: %w", ticker, err)
	}
	return NewBenchmarkSummary(info, total.History.Days(), &closes)
}

// TopHoldings returns the n largest current holdings by weight.
func (r *Report) TopHoldings(n int) map[string]Percent {
	ranked := make([]*HoldingSummary, len(r.Current))
	copy(ranked, r.Current)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Weight > ranked[j].Weight })
	if n > len(ranked) {
		n = len(ranked)
	}
	top := make(map[string]Percent, n)
	for _, s := range ranked[:n] {
		top[s.Ticker] = s.Weight
	}
	return top
}
