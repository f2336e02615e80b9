package investing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// This file reads the engine's two external inputs from JSONL streams, one
// record per line, human-readable and git-friendly. Ingestion from richer
// sources (spreadsheets, broker exports) is a collaborator's job; by the time
// records reach the engine they are plain structured rows.

// DecodeTransactions reads raw trade rows. Dates use the ledger's
// day-month-year convention, actions accept the hand-kept abbreviations.
func DecodeTransactions(r io.Reader) ([]RawTransaction, error) {
	type jrow struct {
		Date     string  `json:"date"`
		Ticker   string  `json:"ticker"`
		Quantity float64 `json:"quantity"`
		Price    float64 `json:"price_per_share"`
		Action   string  `json:"action"`
		Currency string  `json:"currency"`
	}

	var rows []RawTransaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var row jrow
		if err := json.Unmarshal([]byte(text), &row); err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", line, err)
		}
		on, err := ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", line, err)
		}
		action, err := ParseAction(row.Action)
		if err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", line, err)
		}
		currency := row.Currency
		if currency == "" {
			currency = HomeCurrency
		}
		rows = append(rows, RawTransaction{
			Date:     on,
			Ticker:   row.Ticker,
			Quantity: Q(row.Quantity),
			Price:    M(row.Price, currency),
			Action:   action,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// EncodeTrades writes trades back to the ledger format, one per line. Feeding
// it the aggregated output of CombineAndSort produces the canonical form of a
// ledger: encoding, decoding and re-encoding is then byte identical.
func EncodeTrades(w io.Writer, trades []Trade) error {
	type jrow struct {
		Date     Date    `json:"date"`
		Ticker   string  `json:"ticker"`
		Quantity float64 `json:"quantity"`
		Price    float64 `json:"price_per_share"`
		Action   Action  `json:"action"`
		Currency string  `json:"currency"`
	}

	enc := json.NewEncoder(w)
	for _, t := range trades {
		row := jrow{
			Date:     t.Date,
			Ticker:   t.Ticker,
			Quantity: t.Quantity.AsFloat(),
			Price:    t.Price.AsFloat(),
			Action:   t.Action,
			Currency: t.Price.Currency(),
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

// DecodeValuations reads the externally supplied portfolio valuation series
// consumed by the TWR engine, in chronological order.
func DecodeValuations(r io.Reader) ([]Valuation, error) {
	var valuations []Valuation
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var v Valuation
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", line, err)
		}
		valuations = append(valuations, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return valuations, nil
}
