package investing

import "fmt"

// fakeProvider is an in-memory MarketProvider for tests. Every lookup is
// counted so tests can assert on the number of provider calls.
type fakeProvider struct {
	securities map[string]SecurityInfo
	prices     map[string]float64
	splits     map[string]SplitList
	dividends  map[string]History[float64]
	rates      map[string]float64
	closes     map[string]History[float64]

	rateCalls map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		securities: make(map[string]SecurityInfo),
		prices:     make(map[string]float64),
		splits:     make(map[string]SplitList),
		dividends:  make(map[string]History[float64]),
		rates:      make(map[string]float64),
		closes:     make(map[string]History[float64]),
		rateCalls:  make(map[string]int),
	}
}

// addSecurity declares an instrument with its current price.
func (p *fakeProvider) addSecurity(info SecurityInfo, price float64) {
	p.securities[info.Ticker] = info
	p.prices[info.Ticker] = price
}

func (p *fakeProvider) Describe(ticker string) (SecurityInfo, error) {
	info, ok := p.securities[ticker]
	if !ok {
		return SecurityInfo{}, fmt.Errorf("unknown security %s", ticker)
	}
	return info, nil
}

func (p *fakeProvider) CurrentPrice(ticker string) (float64, error) {
	price, ok := p.prices[ticker]
	if !ok {
		return 0, fmt.Errorf("no price for %s", ticker)
	}
	return price, nil
}

func (p *fakeProvider) Splits(ticker string) (SplitList, error) {
	return p.splits[ticker], nil
}

func (p *fakeProvider) Dividends(ticker string) (History[float64], error) {
	return p.dividends[ticker], nil
}

func (p *fakeProvider) ExchangeRate(currency string) (float64, error) {
	p.rateCalls[currency]++
	rate, ok := p.rates[currency]
	if !ok {
		return 0, fmt.Errorf("no rate for %s", currency)
	}
	return rate, nil
}

func (p *fakeProvider) PriceHistory(ticker string, from Date) (open, close History[float64], err error) {
	close, ok := p.closes[ticker]
	if !ok {
		return open, close, fmt.Errorf("no price history for %s", ticker)
	}
	return open, close, nil
}
