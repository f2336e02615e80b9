package investing

import "math"

// Valuation is one externally supplied portfolio snapshot: the total value at
// the end of the date, and the net external flow (deposits minus withdrawals)
// that arrived on it.
type Valuation struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
	Flow  float64 `json:"flow"`
}

// TotalReturn is the portfolio-level time-weighted return record: the date the
// measurement starts, the cumulative return factor at every snapshot date, and
// the rounded total and annualized figures.
type TotalReturn struct {
	Start   Date
	History History[float64] // date -> cumulative return factor
	TWR     Percent
	CAGR    Percent
}

// ComputeTWR chains sub-period returns between consecutive valuations,
// neutralizing the timing of external flows, and closes the series with a
// synthetic "today" point valued at currentValue. An empty valuation series
// yields a zero return anchored at today: a portfolio with no history is a
// degenerate case, not an error.
func ComputeTWR(valuations []Valuation, currentValue float64, today Date) *TotalReturn {
	result := &TotalReturn{Start: today}
	if len(valuations) == 0 {
		result.History.Append(today, 1)
		return result
	}

	first := valuations[0]
	result.Start = first.Date
	factor := 1.0
	result.History.Append(first.Date, factor)
	baseline := first.Value + first.Flow
	for _, v := range valuations[1:] {
		// a zero baseline means the portfolio was emptied; the sub-period
		// contributes nothing to the chain.
		if baseline != 0 {
			factor *= v.Value / baseline
		}
		result.History.Append(v.Date, factor)
		baseline = v.Value + v.Flow
	}
	if baseline != 0 {
		factor *= currentValue / baseline
	}
	result.History.Append(today, factor)

	result.TWR = NewPercent(factor)
	if days := today.Sub(first.Date); days >= 1 {
		result.CAGR = NewPercent(math.Pow(factor, daysPerYear/float64(days)))
	}
	return result
}
