package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jotpe/investing"
)

// fmtCmd holds the flags for the 'fmt' subcommand.
type fmtCmd struct {
	write bool
}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the trade ledger in canonical form" }
func (*fmtCmd) Usage() string {
	return `tsr fmt [-w]

  Combines same-day executions and sorts the ledger chronologically,
  printing the canonical form to stdout. With -w the ledger file is
  rewritten in place.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "write result back to the ledger file instead of stdout")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rows, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	trades, err := investing.CombineAndSort(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error aggregating ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	if err := investing.EncodeTrades(&buf, trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.write {
		fmt.Print(buf.String())
		return subcommands.ExitSuccess
	}

	if err := os.WriteFile(*ledgerFile, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Rewrote %s with %d trades\n", *ledgerFile, len(trades))
	return subcommands.ExitSuccess
}
