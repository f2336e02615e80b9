// Package cmd implements the CLI application to compute portfolio returns.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/jotpe/investing"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&twrCmd{}, "reports")

	c.Register(&fmtCmd{}, "ledger")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "trades.jsonl", "Path to the trade ledger file (JSONL format)")
var valuationsFile = flag.String("valuations-file", "valuations.jsonl", "Path to the portfolio valuations file (JSONL format)")

// DecodeLedger reads the raw trade rows from the app ledger file.
func DecodeLedger() ([]investing.RawTransaction, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return investing.DecodeTransactions(f)
}

// DecodeValuations reads the portfolio valuation series from the app
// valuations file. A missing file is not an error: the series is optional.
func DecodeValuations() ([]investing.Valuation, error) {
	f, err := os.Open(*valuationsFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open valuations file %q: %w", *valuationsFile, err)
	}
	defer f.Close()
	return investing.DecodeValuations(f)
}

// parseCash parses the -cash flag notation "USD:500,EUR:120.5" into cash
// positions.
func parseCash(s string) ([]investing.CashPosition, error) {
	if s == "" {
		return nil, nil
	}
	var positions []investing.CashPosition
	for _, part := range strings.Split(s, ",") {
		currency, amount, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found {
			return nil, fmt.Errorf("invalid cash position %q: want CUR:AMOUNT", part)
		}
		value, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cash amount %q: %w", amount, err)
		}
		positions = append(positions, investing.CashPosition{Currency: strings.ToUpper(currency), Amount: value})
	}
	return positions, nil
}

// printMarkdown renders markdown content to the terminal.
func printMarkdown(content string) {
	out, err := glamour.Render(content, "auto")
	if err != nil {
		// glamour is cosmetic, fall back on the raw markdown.
		fmt.Print(content)
		return
	}
	fmt.Print(out)
}
