package investing

import "sync"

// HomeCurrency is the currency every valuation is finally expressed in.
// Its exchange rate is 1 by definition and never triggers a provider call.
const HomeCurrency = "USD"

// RateCache memoizes exchange-rate lookups for the duration of one run. The
// provider is consulted at most once per currency: repeated lookups are costly
// and must return identical values within a single computation. The cache is
// an explicit object passed by reference to every consumer, never a hidden
// process-wide singleton.
type RateCache struct {
	mu       sync.Mutex
	provider MarketProvider
	rates    map[string]float64
}

// NewRateCache creates an empty cache backed by the given provider.
func NewRateCache(provider MarketProvider) *RateCache {
	return &RateCache{provider: provider, rates: make(map[string]float64)}
}

// Rate returns the value of one unit of the given currency in the home
// currency. The mutex is held across the provider call so that a missing key
// has exactly one writer and concurrent readers of the same key never race a
// duplicate network call.
func (c *RateCache) Rate(currency string) (float64, error) {
	if currency == HomeCurrency || currency == "" {
		return 1, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if rate, ok := c.rates[currency]; ok {
		return rate, nil
	}
	rate, err := c.provider.ExchangeRate(currency)
	if err != nil {
		return 0, err
	}
	c.rates[currency] = rate
	return rate, nil
}
