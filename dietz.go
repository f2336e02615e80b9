package investing

import "math"

// daysPerYear is the annualization basis for CAGR.
const daysPerYear = 365.25

// DietzResult is the chained Modified Dietz return over all ownership periods
// of one instrument.
type DietzResult struct {
	TSR    Percent
	CAGR   Percent
	Factor float64 // cumulative return factor, 1.0 = flat
	Days   int     // total ownership length in days
}

// ModifiedDietz computes the money-weighted return of an instrument: one
// Modified Dietz return per ownership period, chained multiplicatively into a
// total-shareholder-return factor, then annualized over the summed ownership
// length. An open period must already carry its synthetic mark-to-market
// outflow at `today`.
func ModifiedDietz(ticker string, periods []OwnershipPeriod, inflows, outflows []Flow, today Date) (DietzResult, error) {
	factor := 1.0
	totalDays := 0
	for _, period := range periods {
		days, f, err := dietzPeriod(ticker, period, inflows, outflows, today)
		if err != nil {
			return DietzResult{}, err
		}
		totalDays += days
		factor *= f
	}
	result := DietzResult{
		Factor: factor,
		Days:   totalDays,
		TSR:    NewPercent(factor),
	}
	if totalDays > 0 {
		result.CAGR = NewPercent(math.Pow(factor, daysPerYear/float64(totalDays)))
	}
	return result, nil
}

// dietzPeriod computes the return factor of a single ownership period.
//
// The period length is floored at one day so that a same-day round trip still
// has a measurable invested capital. Inflows are counted in [start, end) and
// outflows in (start, end]; a single-day period degenerates both windows to
// the one date. Each flow is weighted by the fraction of the period it was
// invested; the weight of an inflow is floored at one day (a same-day entry
// must not weigh zero) while outflow weights are not floored, preserving the
// convention of the historical figures.
func dietzPeriod(ticker string, period OwnershipPeriod, inflows, outflows []Flow, today Date) (days int, factor float64, err error) {
	start := period.Start
	end := period.End
	if period.Open() {
		end = today
	}
	length := max(end.Sub(start), 1)

	var gain, avgCapital float64
	for _, in := range inflows {
		if !inWindow(in.Date, start, end) {
			continue
		}
		value := in.Value.AsFloat()
		gain -= value
		weight := float64(max(end.Sub(in.Date), 1)) / float64(length)
		avgCapital += weight * value
	}
	for _, out := range outflows {
		if !outWindow(out.Date, start, end) {
			continue
		}
		value := out.Value.AsFloat()
		gain += value
		weight := float64(end.Sub(out.Date)) / float64(length)
		avgCapital -= weight * value
	}

	if avgCapital == 0 {
		if gain == 0 {
			// a period with no measurable flows contributes nothing.
			return length, 1, nil
		}
		return 0, 0, &DegenerateCapitalError{Ticker: ticker, Start: start, End: end}
	}
	return length, 1 + gain/avgCapital, nil
}

// inWindow reports whether an inflow on date d belongs to the period
// [start, end). A single-day period accepts its one date.
func inWindow(d, start, end Date) bool {
	if start == end {
		return d == start
	}
	return !d.Before(start) && d.Before(end)
}

// outWindow reports whether an outflow on date d belongs to the period
// (start, end]. A single-day period accepts its one date.
func outWindow(d, start, end Date) bool {
	if start == end {
		return d == end
	}
	return d.After(start) && !d.After(end)
}
