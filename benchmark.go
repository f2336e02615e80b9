package investing

import "math"

// BenchmarkSummary mirrors the shape of a holding summary for a reference
// instrument, plus its return curve aligned to the portfolio's date grid.
type BenchmarkSummary struct {
	Ticker  string
	Name    string
	TWR     Percent
	CAGR    Percent
	History History[float64] // date -> normalized price, same grid as the TWR history
}

// AlignBenchmark maps a benchmark's daily close series onto the reference date
// grid produced by the TWR engine. The first grid date is seeded at 1.0; every
// later grid date takes the close of the latest trading day not after it,
// carrying forward across non-trading days, normalized against the seed. The
// output has exactly one point per grid date or the alignment fails.
func AlignBenchmark(grid []Date, closes *History[float64]) (History[float64], error) {
	var aligned History[float64]
	if len(grid) == 0 || closes.Len() == 0 {
		return aligned, &AlignmentLengthError{Want: len(grid), Got: 0}
	}

	base, ok := closes.ValueAsOf(grid[0])
	if !ok {
		// the series starts after the grid: normalize against its first close
		// and hold the seed value until trading data begins.
		_, base = closes.First()
	}

	aligned.Append(grid[0], 1)
	for _, on := range grid[1:] {
		value, ok := closes.ValueAsOf(on)
		if !ok {
			aligned.Append(on, 1)
			continue
		}
		aligned.Append(on, value/base)
	}

	if aligned.Len() != len(grid) {
		return aligned, &AlignmentLengthError{Want: len(grid), Got: aligned.Len()}
	}
	return aligned, nil
}

// NewBenchmarkSummary aligns a benchmark to the portfolio grid and derives its
// total and annualized return over the grid's span.
func NewBenchmarkSummary(info SecurityInfo, grid []Date, closes *History[float64]) (*BenchmarkSummary, error) {
	aligned, err := AlignBenchmark(grid, closes)
	if err != nil {
		return nil, err
	}
	_, factor := aligned.Latest()
	summary := &BenchmarkSummary{
		Ticker:  info.Ticker,
		Name:    info.Name,
		TWR:     NewPercent(factor),
		History: aligned,
	}
	if days := grid[len(grid)-1].Sub(grid[0]); days >= 1 {
		summary.CAGR = NewPercent(math.Pow(factor, daysPerYear/float64(days)))
	}
	return summary, nil
}
