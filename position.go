package investing

import (
	"fmt"
	"slices"
)

// PositionSnapshot records the quantity held right after the net position
// changed on a date. Quantities are split-adjusted as of their own date and
// never rewritten retroactively.
type PositionSnapshot struct {
	Date     Date
	Quantity Quantity
}

// OwnershipPeriod is a maximal contiguous span during which the held quantity
// is continuously nonzero. A zero End means the period is still open.
type OwnershipPeriod struct {
	Start Date
	End   Date
}

// Open reports whether the period is still ongoing.
func (p OwnershipPeriod) Open() bool { return p.End.IsZero() }

// Flow is a dated cash movement: inflows are purchase costs, outflows are sale
// proceeds, net dividends and the mark-to-market of an open position.
type Flow struct {
	Date  Date
	Value Money
}

// PositionLedger reconstructs the ownership timeline of one instrument from
// its chronological trade stream. It is a two-state machine: flat (quantity
// zero) or held (quantity positive). Splits are replayed against the carried
// quantity before every mutation, so a snapshot is always expressed in the
// share count convention of its own date.
type PositionLedger struct {
	ticker    string
	splits    SplitList
	snapshots []PositionSnapshot
	periods   []OwnershipPeriod
	inflows   []Flow
	outflows  []Flow
}

// NewPositionLedger returns an empty ledger for a single instrument, with the
// instrument's ordered split history.
func NewPositionLedger(ticker string, splits SplitList) *PositionLedger {
	return &PositionLedger{ticker: ticker, splits: splits}
}

// Ticker returns the instrument this ledger tracks.
func (l *PositionLedger) Ticker() string { return l.ticker }

// CurrentQuantity returns the held quantity as of the last recorded snapshot.
func (l *PositionLedger) CurrentQuantity() Quantity {
	if len(l.snapshots) == 0 {
		return Q(0)
	}
	return l.snapshots[len(l.snapshots)-1].Quantity
}

// LastDate returns the date of the last recorded snapshot.
func (l *PositionLedger) LastDate() Date {
	if len(l.snapshots) == 0 {
		return Date{}
	}
	return l.snapshots[len(l.snapshots)-1].Date
}

// Held reports whether the position is currently nonzero.
func (l *PositionLedger) Held() bool { return l.CurrentQuantity().IsPositive() }

// Snapshots returns the ordered quantity snapshots.
func (l *PositionLedger) Snapshots() []PositionSnapshot { return slices.Clone(l.snapshots) }

// Periods returns the ordered list of ownership periods.
func (l *PositionLedger) Periods() []OwnershipPeriod { return slices.Clone(l.periods) }

// Inflows returns the recorded purchase costs in chronological order.
func (l *PositionLedger) Inflows() []Flow { return slices.Clone(l.inflows) }

// Outflows returns the recorded sale proceeds in chronological order.
func (l *PositionLedger) Outflows() []Flow { return slices.Clone(l.outflows) }

// Apply consumes one trade. Trades must arrive in chronological order.
func (l *PositionLedger) Apply(t Trade) error {
	switch t.Action {
	case Buy:
		l.buy(t)
		return nil
	case Sell:
		return l.sell(t)
	default:
		return &MalformedActionError{Action: string(t.Action)}
	}
}

// carried returns the current quantity expressed in the share count convention
// of the given date, replaying any splits between the last snapshot and it.
// Same-day trades need no replay: a split cannot sit inside a single day.
func (l *PositionLedger) carried(on Date) Quantity {
	quantity := l.CurrentQuantity()
	if last := l.LastDate(); !last.IsZero() && on.After(last) {
		quantity = l.splits.Adjust(quantity, last, on)
	}
	return quantity
}

func (l *PositionLedger) buy(t Trade) {
	carried := l.carried(t.Date)
	if carried.IsZero() {
		// flat to held: a new ownership period opens.
		l.periods = append(l.periods, OwnershipPeriod{Start: t.Date})
	}
	l.inflows = append(l.inflows, Flow{Date: t.Date, Value: t.Cost()})
	l.appendSnapshot(t.Date, carried.Add(t.Quantity))
}

func (l *PositionLedger) sell(t Trade) error {
	carried := l.carried(t.Date)
	remaining := carried.Sub(t.Quantity)
	// a flat ledger has nothing to sell, whatever the quantity.
	if carried.IsZero() || remaining.IsNegative() {
		return &NegativeQuantityError{Ticker: l.ticker, On: t.Date, Held: carried, Sold: t.Quantity}
	}
	if remaining.IsZero() {
		l.closePeriod(t.Date)
	}
	l.outflows = append(l.outflows, Flow{Date: t.Date, Value: t.Cost()})
	l.appendSnapshot(t.Date, remaining)
	return nil
}

// appendSnapshot records the new quantity, merging into the last snapshot when
// the date is unchanged.
func (l *PositionLedger) appendSnapshot(on Date, quantity Quantity) {
	if last := len(l.snapshots) - 1; last >= 0 && l.snapshots[last].Date == on {
		l.snapshots[last].Quantity = quantity
		return
	}
	l.snapshots = append(l.snapshots, PositionSnapshot{Date: on, Quantity: quantity})
}

func (l *PositionLedger) closePeriod(on Date) {
	last := len(l.periods) - 1
	if last < 0 || !l.periods[last].Open() {
		// a sell without an open period means Apply was fed out of order.
		panic(fmt.Sprintf("%s: closing a period on %s but none is open", l.ticker, on))
	}
	l.periods[last].End = on
}

// LatestBuy returns the date of the most recent purchase.
func (l *PositionLedger) LatestBuy() Date {
	if len(l.inflows) == 0 {
		return Date{}
	}
	return l.inflows[len(l.inflows)-1].Date
}

// LatestSell returns the date of the most recent sale, or the zero date if the
// instrument was never sold.
func (l *PositionLedger) LatestSell() Date {
	if len(l.outflows) == 0 {
		return Date{}
	}
	return l.outflows[len(l.outflows)-1].Date
}
