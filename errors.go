package investing

import "fmt"

// The engine distinguishes a small taxonomy of failures. Malformed actions and
// ledger inconsistencies point at corrupt input; the others are scoped to a
// single instrument or benchmark and never abort unrelated computations.

// MalformedActionError reports a trade record whose action is neither a buy
// nor a sell. It aborts the whole run: the ledger cannot be trusted.
type MalformedActionError struct {
	Action string
}

func (e *MalformedActionError) Error() string {
	return fmt.Sprintf("unknown trade action %q", e.Action)
}

// InvalidQuantityError reports a trade row whose quantity is zero or negative.
// Like a malformed action it aborts the whole run: every row must move shares.
type InvalidQuantityError struct {
	Ticker   string
	On       Date
	Quantity Quantity
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("%s: invalid traded quantity %s on %s: must be positive", e.Ticker, e.Quantity, e.On)
}

// CurrencyMismatchError reports same-day fills of one instrument quoted in
// different currencies. They cannot be averaged into one trade.
type CurrencyMismatchError struct {
	Ticker string
	On     Date
	Have   string
	Got    string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("%s: fills on %s mix currencies %s and %s", e.Ticker, e.On, e.Have, e.Got)
}

// NegativeQuantityError reports a sell that would drive a position below zero.
// It is never recovered automatically: the ledger for that instrument is
// inconsistent.
type NegativeQuantityError struct {
	Ticker string
	On     Date
	Held   Quantity
	Sold   Quantity
}

func (e *NegativeQuantityError) Error() string {
	return fmt.Sprintf("%s: selling %s on %s but only %s held", e.Ticker, e.Sold, e.On, e.Held)
}

// DegenerateCapitalError reports a Modified Dietz period whose average
// invested capital evaluates to zero while the gain does not. Dividing would
// be meaningless, so the instrument's summary is abandoned instead.
type DegenerateCapitalError struct {
	Ticker string
	Start  Date
	End    Date
}

func (e *DegenerateCapitalError) Error() string {
	return fmt.Sprintf("%s: zero average capital with nonzero gain in period %s - %s", e.Ticker, e.Start, e.End)
}

// AlignmentLengthError reports a benchmark series that could not be mapped
// onto the reference date grid.
type AlignmentLengthError struct {
	Want int
	Got  int
}

func (e *AlignmentLengthError) Error() string {
	return fmt.Sprintf("benchmark alignment produced %d points, want %d", e.Got, e.Want)
}

// QuoteUnavailableError reports a provider failure for a single instrument.
type QuoteUnavailableError struct {
	Ticker string
	Err    error
}

func (e *QuoteUnavailableError) Error() string {
	return fmt.Sprintf("no quote available for %s: %v", e.Ticker, e.Err)
}

func (e *QuoteUnavailableError) Unwrap() error { return e.Err }
