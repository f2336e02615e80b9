package investing

// Split records a stock split effective on a date: one share held before the
// split becomes Numerator/Denominator shares after it.
type Split struct {
	Date        Date
	Numerator   int64
	Denominator int64
}

// SplitList is an ordered (by date, ascending) list of splits for one instrument.
type SplitList []Split

// Adjust scales a quantity established on the anchor date to its equivalent as
// of the reference date, replaying every split strictly after the anchor and
// not after the reference. It is a pure function: both the Position Ledger and
// the Dividend Attributor call it, so their bookkeeping stays consistent.
func (s SplitList) Adjust(quantity Quantity, anchor, reference Date) Quantity {
	for _, split := range s {
		if !split.Date.After(anchor) {
			continue
		}
		if split.Date.After(reference) {
			break
		}
		quantity = quantity.Mul(Q(split.Numerator)).Div(Q(split.Denominator))
	}
	return quantity
}
