// Package renderer turns engine results into markdown documents.
package renderer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jotpe/investing"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the aggregated portfolio report to a markdown string.
func ReportMarkdown(r *investing.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Report on %s", r.Date))
	doc.PlainText(fmt.Sprintf("Total Value: %s", r.TotalValue))

	if len(r.Allocation) > 0 {
		doc.H2("Allocation")
		doc.Table(allocationTable(r.Allocation))
	}

	if len(r.Current) > 0 {
		doc.H2("Current Holdings")
		table := md.TableSet{
			Header: []string{"Ticker", "Name", "Value", "Weight", "TSR", "CAGR", "Held Since"},
		}
		for _, s := range r.Current {
			table.Rows = append(table.Rows, []string{
				s.Ticker,
				s.Name,
				s.Value.String(),
				s.Weight.String(),
				s.TSR.SignedString(),
				s.CAGR.SignedString(),
				s.LatestBuy.String(),
			})
		}
		doc.Table(table)
	}

	if len(r.Historical) > 0 {
		doc.H2("Historical Holdings")
		table := md.TableSet{
			Header: []string{"Ticker", "Name", "TSR", "CAGR", "Ownership"},
		}
		for _, s := range r.Historical {
			table.Rows = append(table.Rows, []string{
				s.Ticker,
				s.Name,
				s.TSR.SignedString(),
				s.CAGR.SignedString(),
				formatPeriods(s.Periods),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// allocationTable lists asset classes by decreasing weight.
func allocationTable(allocation map[string]investing.Percent) md.TableSet {
	categories := make([]string, 0, len(allocation))
	for category := range allocation {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if allocation[categories[i]] != allocation[categories[j]] {
			return allocation[categories[i]] > allocation[categories[j]]
		}
		return categories[i] < categories[j]
	})

	table := md.TableSet{Header: []string{"Category", "Weight"}}
	for _, category := range categories {
		table.Rows = append(table.Rows, []string{category, allocation[category].String()})
	}
	return table
}

// formatPeriods writes ownership periods as "2020-01-02 to 2021-03-04", most
// recent first, an open period ending in "now".
func formatPeriods(periods []investing.OwnershipPeriod) string {
	parts := make([]string, 0, len(periods))
	for _, p := range periods {
		end := "now"
		if !p.Open() {
			end = p.End.String()
		}
		parts = append(parts, fmt.Sprintf("%s to %s", p.Start, end))
	}
	return strings.Join(parts, ", ")
}
