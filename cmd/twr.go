package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/jotpe/investing"
	"github.com/jotpe/investing/renderer"
)

// twrCmd holds the flags for the 'twr' subcommand.
type twrCmd struct {
	date       string
	cash       string
	benchmarks string
}

func (*twrCmd) Name() string     { return "twr" }
func (*twrCmd) Synopsis() string { return "display the portfolio time-weighted return" }
func (*twrCmd) Usage() string {
	return `tsr twr [-d <date>] [-cash <CUR:AMOUNT,...>] [-benchmarks <ticker,...>]

  Chains the recorded portfolio valuations with today's computed total
  value into a time-weighted return, optionally next to one or more
  benchmark instruments aligned on the same dates.
`
}

func (c *twrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", investing.Today().String(), "Date for the report")
	f.StringVar(&c.cash, "cash", "", "Uninvested cash positions, e.g. \"USD:500,EUR:120.5\"")
	f.StringVar(&c.benchmarks, "benchmarks", "", "Comma separated benchmark tickers, e.g. \"SPY.US,QQQ.US\"")
}

func (c *twrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	valuations, err := DecodeValuations()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading valuations: %v\n", err)
		return subcommands.ExitFailure
	}

	portfolio := investing.NewPortfolio(investing.NewEODHD(""), investing.WithCash(cash...))

	report, err := portfolio.Compute(rows, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	total := portfolio.TotalReturn(valuations, report)

	var benchmarks []*investing.BenchmarkSummary
	for _, ticker := range strings.Split(c.benchmarks, ",") {
		ticker = strings.TrimSpace(ticker)
		if ticker == "" {
			continue
		}
		b, err := portfolio.Benchmark(ticker, total)
		if err != nil {
			// a failed benchmark leaves the portfolio figures intact.
			fmt.Fprintf(os.Stderr, "Warning: benchmark %s skipped: %v\n", ticker, err)
			continue
		}
		benchmarks = append(benchmarks, b)
	}

	printMarkdown(renderer.TotalReturnMarkdown(total, benchmarks...))

	return subcommands.ExitSuccess
}
