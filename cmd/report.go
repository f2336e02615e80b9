package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jotpe/investing"
	"github.com/jotpe/investing/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	date        string
	withholding float64
	cash        string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display current and historical holdings with returns" }
func (*reportCmd) Usage() string {
	return `tsr report [-d <date>] [-withholding <rate>] [-cash <CUR:AMOUNT,...>]

  Reconstructs every holding from the trade ledger and displays the
  portfolio report: current holdings with market values and weights,
  closed holdings with their realized returns, and the allocation by
  asset class.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", investing.Today().String(), "Date for the report")
	f.Float64Var(&c.withholding, "withholding", investing.DefaultWithholdingRate, "Dividend withholding tax rate")
	f.StringVar(&c.cash, "cash", "", "Uninvested cash positions, e.g. \"USD:500,EUR:120.5\"")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := investing.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	cash, err := parseCash(c.cash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cash positions: %v\n", err)
		return subcommands.ExitUsageError
	}

	rows, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	portfolio := investing.NewPortfolio(investing.NewEODHD(""),
		investing.WithWithholdingRate(c.withholding),
		investing.WithCash(cash...),
	)

	report, err := portfolio.Compute(rows, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReportMarkdown(report))

	return subcommands.ExitSuccess
}
