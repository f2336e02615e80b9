package renderer

import (
	"bytes"
	"fmt"

	"github.com/jotpe/investing"
	md "github.com/nao1215/markdown"
)

// TotalReturnMarkdown renders the portfolio's time-weighted return, optionally
// next to one or more benchmarks aligned on the same date grid.
func TotalReturnMarkdown(total *investing.TotalReturn, benchmarks ...*investing.BenchmarkSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Time-Weighted Return since %s", total.Start))

	table := md.TableSet{
		Header: []string{"", "TWR", "CAGR"},
		Rows: [][]string{
			{"Portfolio", total.TWR.SignedString(), total.CAGR.SignedString()},
		},
	}
	for _, b := range benchmarks {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%s (%s)", b.Name, b.Ticker),
			b.TWR.SignedString(),
			b.CAGR.SignedString(),
		})
	}
	doc.Table(table)

	if total.History.Len() > 1 {
		doc.H2("Cumulative Return")
		history := md.TableSet{Header: historyHeader(benchmarks)}
		for on, factor := range total.History.Values() {
			row := []string{on.String(), investing.NewPercent(factor).SignedString()}
			for _, b := range benchmarks {
				value, ok := b.History.Get(on)
				if !ok {
					row = append(row, "")
					continue
				}
				row = append(row, investing.NewPercent(value).SignedString())
			}
			history.Rows = append(history.Rows, row)
		}
		doc.Table(history)
	}

	return doc.String()
}

func historyHeader(benchmarks []*investing.BenchmarkSummary) []string {
	header := []string{"Date", "Portfolio"}
	for _, b := range benchmarks {
		header = append(header, b.Ticker)
	}
	return header
}
