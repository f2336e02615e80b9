package investing

import (
	"errors"
	"math"
	"testing"
)

func flow(on string, value float64) Flow {
	return Flow{Date: MustParseDate(on), Value: M(value, "USD")}
}

func closedPeriod(start, end string) OwnershipPeriod {
	return OwnershipPeriod{Start: MustParseDate(start), End: MustParseDate(end)}
}

func TestDietzSimplePeriod(t *testing.T) {
	// one buy held for the whole period: the gain over the invested capital.
	periods := []OwnershipPeriod{closedPeriod("2024-01-01", "2024-03-01")}
	inflows := []Flow{flow("2024-01-01", 1000)}
	outflows := []Flow{flow("2024-03-01", 1200)}

	result, err := ModifiedDietz("AAPL.US", periods, inflows, outflows, MustParseDate("2024-06-01"))
	if err != nil {
		t.Fatalf("ModifiedDietz: %v", err)
	}
	if result.Days != 60 {
		t.Errorf("Days = %d, want 60", result.Days)
	}
	if want := Percent(20); !result.TSR.Equal(want) {
		t.Errorf("TSR = %s, want %s", result.TSR, want)
	}
	if want := NewPercent(math.Pow(1.2, daysPerYear/60)); !result.CAGR.Equal(want) {
		t.Errorf("CAGR = %s, want %s", result.CAGR, want)
	}
}

func TestDietzMidPeriodFlowWeighting(t *testing.T) {
	// a second buy halfway through only counts for half the period.
	periods := []OwnershipPeriod{closedPeriod("2024-01-01", "2024-01-21")}
	inflows := []Flow{
		flow("2024-01-01", 1000),
		flow("2024-01-11", 500),
	}
	outflows := []Flow{flow("2024-01-21", 1650)}

	result, err := ModifiedDietz("AAPL.US", periods, inflows, outflows, MustParseDate("2024-06-01"))
	if err != nil {
		t.Fatalf("ModifiedDietz: %v", err)
	}
	// gain = 1650 - 1500 = 150; average capital = 1000 + 500x(10/20) = 1250.
	if want := NewPercent(1 + 150.0/1250.0); !result.TSR.Equal(want) {
		t.Errorf("TSR = %s, want %s", result.TSR, want)
	}
}

func TestDietzSingleDayRoundTrip(t *testing.T) {
	// an intraday round trip is measured over one day against the full cost.
	periods := []OwnershipPeriod{closedPeriod("2024-01-10", "2024-01-10")}
	inflows := []Flow{flow("2024-01-10", 1000)}
	outflows := []Flow{flow("2024-01-10", 1100)}

	result, err := ModifiedDietz("AAPL.US", periods, inflows, outflows, MustParseDate("2024-06-01"))
	if err != nil {
		t.Fatalf("ModifiedDietz: %v", err)
	}
	if result.Days != 1 {
		t.Errorf("Days = %d, want 1", result.Days)
	}
	if want := Percent(10); !result.TSR.Equal(want) {
		t.Errorf("TSR = %s, want %s", result.TSR, want)
	}
}

func TestDietzChainsPeriods(t *testing.T) {
	// two ownership periods multiply; the gap between them does not count.
	periods := []OwnershipPeriod{
		closedPeriod("2024-01-01", "2024-01-31"),
		closedPeriod("2024-06-01", "2024-07-01"),
	}
	inflows := []Flow{
		flow("2024-01-01", 1000),
		flow("2024-06-01", 1000),
	}
	outflows := []Flow{
		flow("2024-01-31", 1100),
		flow("2024-07-01", 1210),
	}

	result, err := ModifiedDietz("AAPL.US", periods, inflows, outflows, MustParseDate("2024-12-01"))
	if err != nil {
		t.Fatalf("ModifiedDietz: %v", err)
	}
	if result.Days != 60 {
		t.Errorf("Days = %d, want 60", result.Days)
	}
	// 1.1 x 1.21 = 1.331
	if want := NewPercent(1.1 * 1.21); !result.TSR.Equal(want) {
		t.Errorf("TSR = %s, want %s", result.TSR, want)
	}
	if want := NewPercent(math.Pow(1.1*1.21, daysPerYear/60)); !result.CAGR.Equal(want) {
		t.Errorf("CAGR = %s, want %s", result.CAGR, want)
	}
}

func TestDietzOpenPeriodEndsToday(t *testing.T) {
	// an open period is measured up to today; the mark-to-market outflow is
	// already part of the outflows.
	today := MustParseDate("2024-03-01")
	periods := []OwnershipPeriod{{Start: MustParseDate("2024-01-01")}}
	inflows := []Flow{flow("2024-01-01", 1000)}
	outflows := []Flow{flow("2024-03-01", 1500)}

	result, err := ModifiedDietz("AAPL.US", periods, inflows, outflows, today)
	if err != nil {
		t.Fatalf("ModifiedDietz: %v", err)
	}
	if result.Days != 60 {
		t.Errorf("Days = %d, want 60", result.Days)
	}
	if want := Percent(50); !result.TSR.Equal(want) {
		t.Errorf("TSR = %s, want %s", result.TSR, want)
	}
}

func TestDietzSplitNeutral(t *testing.T) {
	// a split changes share counts, not money: buy 10 at $10, a 2:1 split,
	// sell 20 at $5 is a flat return.
	periods := []OwnershipPeriod{closedPeriod("2024-01-01", "2024-03-01")}
	inflows := []Flow{flow("2024-01-01", 100)}
	outflows := []Flow{flow("2024-03-01", 100)}

	result, err := ModifiedDietz("NVDA.US", periods, inflows, outflows, MustParseDate("2024-06-01"))
	if err != nil {
		t.Fatalf("ModifiedDietz: %v", err)
	}
	if want := Percent(0); !result.TSR.Equal(want) {
		t.Errorf("TSR = %s, want %s", result.TSR, want)
	}
}

func TestDietzEmptyPeriodContributesNothing(t *testing.T) {
	periods := []OwnershipPeriod{closedPeriod("2024-01-01", "2024-02-01")}

	result, err := ModifiedDietz("AAPL.US", periods, nil, nil, MustParseDate("2024-06-01"))
	if err != nil {
		t.Fatalf("ModifiedDietz: %v", err)
	}
	if result.Factor != 1 {
		t.Errorf("Factor = %v, want 1", result.Factor)
	}
	if result.Days != 31 {
		t.Errorf("Days = %d, want 31", result.Days)
	}
}

func TestDietzDegenerateCapital(t *testing.T) {
	// a gain with no measurable invested capital cannot be turned into a rate.
	periods := []OwnershipPeriod{closedPeriod("2024-01-01", "2024-02-01")}
	outflows := []Flow{flow("2024-02-01", 100)}

	_, err := ModifiedDietz("AAPL.US", periods, nil, outflows, MustParseDate("2024-06-01"))
	var degenerate *DegenerateCapitalError
	if !errors.As(err, &degenerate) {
		t.Fatalf("want DegenerateCapitalError, got %v", err)
	}
}

func TestDietzIgnoresFlowsOutsidePeriod(t *testing.T) {
	periods := []OwnershipPeriod{closedPeriod("2024-02-01", "2024-03-01")}
	inflows := []Flow{
		flow("2024-01-15", 9999), // before the period
		flow("2024-02-01", 1000),
		flow("2024-03-01", 9999), // an inflow on the end date belongs to the next period
	}
	outflows := []Flow{
		flow("2024-02-01", 9999), // an outflow on the start date belongs to the previous period
		flow("2024-03-01", 1100),
		flow("2024-04-01", 9999), // after the period
	}

	result, err := ModifiedDietz("AAPL.US", periods, inflows, outflows, MustParseDate("2024-06-01"))
	if err != nil {
		t.Fatalf("ModifiedDietz: %v", err)
	}
	if want := Percent(10); !result.TSR.Equal(want) {
		t.Errorf("TSR = %s, want %s", result.TSR, want)
	}
}
