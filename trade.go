package investing

import (
	"slices"
	"strings"
)

// Action identifies the direction of a trade.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// ParseAction parses the action column of a raw trade record. It accepts the
// abbreviations found in hand-kept ledgers ("b", "buy", "S", "SELL", ...).
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B", "BUY":
		return Buy, nil
	case "S", "SELL":
		return Sell, nil
	default:
		return "", &MalformedActionError{Action: s}
	}
}

// RawTransaction is a single row of the trade ledger as delivered by the
// ingestion boundary: one fill, possibly one of several for the same
// instrument on the same day.
type RawTransaction struct {
	Date     Date
	Ticker   string
	Quantity Quantity
	Price    Money // price per unit
	Action   Action
}

// Trade is the merged net of all same-day fills of one instrument in one
// direction. Produced once by CombineAndSort, immutable thereafter.
type Trade struct {
	Date     Date
	Ticker   string
	Quantity Quantity
	Price    Money // quantity-weighted average price per unit
	Action   Action
}

// Cost returns the total money moved by the trade.
func (t Trade) Cost() Money { return t.Price.Mul(t.Quantity) }

// CombineAndSort merges raw transaction rows sharing the same instrument,
// calendar date and direction into one net trade with a quantity-weighted
// average price, and returns all trades sorted by date. Same-day trades of
// one instrument keep buys before sells, so that an intraday round trip is
// replayed in the only order that keeps the position non-negative.
func CombineAndSort(rows []RawTransaction) ([]Trade, error) {
	type key struct {
		ticker string
		date   Date
		action Action
	}
	type acc struct {
		quantity Quantity
		value    Money
	}

	groups := make(map[key]*acc)
	order := make([]key, 0, len(rows))
	for _, row := range rows {
		if row.Action != Buy && row.Action != Sell {
			return nil, &MalformedActionError{Action: string(row.Action)}
		}
		if !row.Quantity.IsPositive() {
			return nil, &InvalidQuantityError{Ticker: row.Ticker, On: row.Date, Quantity: row.Quantity}
		}
		k := key{ticker: row.Ticker, date: row.Date, action: row.Action}
		g, ok := groups[k]
		if !ok {
			g = &acc{value: M(0, row.Price.Currency())}
			groups[k] = g
			order = append(order, k)
		}
		if have, got := g.value.Currency(), row.Price.Currency(); have != got && have != "" && got != "" {
			return nil, &CurrencyMismatchError{Ticker: row.Ticker, On: row.Date, Have: have, Got: got}
		}
		g.quantity = g.quantity.Add(row.Quantity)
		g.value = g.value.Add(row.Price.Mul(row.Quantity))
	}

	trades := make([]Trade, 0, len(order))
	for _, k := range order {
		g := groups[k]
		trades = append(trades, Trade{
			Date:     k.date,
			Ticker:   k.ticker,
			Quantity: g.quantity,
			Price:    g.value.Div(g.quantity),
			Action:   k.action,
		})
	}

	slices.SortStableFunc(trades, func(a, b Trade) int {
		if a.Date.Before(b.Date) {
			return -1
		}
		if a.Date.After(b.Date) {
			return 1
		}
		if c := strings.Compare(a.Ticker, b.Ticker); c != 0 {
			return c
		}
		// buys before sells on the same day.
		return strings.Compare(string(a.Action), string(b.Action))
	})
	return trades, nil
}
