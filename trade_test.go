package investing

import (
	"errors"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"BUY", Buy},
		{"buy", Buy},
		{"B", Buy},
		{"b ", Buy},
		{"SELL", Sell},
		{"s", Sell},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if err != nil {
			t.Errorf("ParseAction(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	_, err := ParseAction("TRANSFER")
	var malformed *MalformedActionError
	if !errors.As(err, &malformed) {
		t.Errorf("ParseAction(TRANSFER): want MalformedActionError, got %v", err)
	}
}

func TestCombineSameDayFills(t *testing.T) {
	rows := []RawTransaction{
		{Date: MustParseDate("2024-01-10"), Ticker: "AAPL.US", Quantity: Q(10), Price: M(100.0, "USD"), Action: Buy},
		{Date: MustParseDate("2024-01-10"), Ticker: "AAPL.US", Quantity: Q(10), Price: M(200.0, "USD"), Action: Buy},
	}
	trades, err := CombineAndSort(rows)
	if err != nil {
		t.Fatalf("CombineAndSort: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(trades))
	}
	got := trades[0]
	if !got.Quantity.Equal(Q(20)) {
		t.Errorf("Quantity = %s, want 20", got.Quantity)
	}
	if !got.Price.Equal(M(150.0, "USD")) {
		t.Errorf("Price = %s, want $150 (value-weighted average)", got.Price)
	}
	if !got.Cost().Equal(M(3000.0, "USD")) {
		t.Errorf("Cost() = %s, want $3000", got.Cost())
	}
}

func TestCombineKeepsDirectionsApart(t *testing.T) {
	on := MustParseDate("2024-01-10")
	rows := []RawTransaction{
		{Date: on, Ticker: "AAPL.US", Quantity: Q(5), Price: M(110.0, "USD"), Action: Sell},
		{Date: on, Ticker: "AAPL.US", Quantity: Q(5), Price: M(100.0, "USD"), Action: Buy},
	}
	trades, err := CombineAndSort(rows)
	if err != nil {
		t.Fatalf("CombineAndSort: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	// buys replay before sells on the same day.
	if trades[0].Action != Buy || trades[1].Action != Sell {
		t.Errorf("order = %v, %v, want BUY then SELL", trades[0].Action, trades[1].Action)
	}
}

func TestCombineSortsByDate(t *testing.T) {
	rows := []RawTransaction{
		{Date: MustParseDate("2024-03-01"), Ticker: "AAPL.US", Quantity: Q(1), Price: M(1.0, "USD"), Action: Buy},
		{Date: MustParseDate("2024-01-01"), Ticker: "NVDA.US", Quantity: Q(1), Price: M(1.0, "USD"), Action: Buy},
		{Date: MustParseDate("2024-02-01"), Ticker: "AAPL.US", Quantity: Q(1), Price: M(1.0, "USD"), Action: Buy},
	}
	trades, err := CombineAndSort(rows)
	if err != nil {
		t.Fatalf("CombineAndSort: %v", err)
	}
	for i := 1; i < len(trades); i++ {
		if trades[i].Date.Before(trades[i-1].Date) {
			t.Errorf("trades out of order: %s before %s", trades[i].Date, trades[i-1].Date)
		}
	}
}

func TestCombineRejectsNonPositiveQuantity(t *testing.T) {
	on := MustParseDate("2024-01-10")
	for _, qty := range []Quantity{Q(0), Q(-5)} {
		rows := []RawTransaction{
			{Date: on, Ticker: "AAPL.US", Quantity: qty, Price: M(100.0, "USD"), Action: Buy},
		}
		_, err := CombineAndSort(rows)
		var invalid *InvalidQuantityError
		if !errors.As(err, &invalid) {
			t.Fatalf("quantity %s: want InvalidQuantityError, got %v", qty, err)
		}
		if invalid.Ticker != "AAPL.US" || invalid.On != on {
			t.Errorf("error carries %s on %s, want AAPL.US on %s", invalid.Ticker, invalid.On, on)
		}
	}
}

func TestCombineRejectsMixedCurrencies(t *testing.T) {
	on := MustParseDate("2024-01-10")
	rows := []RawTransaction{
		{Date: on, Ticker: "SAP.XETRA", Quantity: Q(5), Price: M(200.0, "EUR"), Action: Buy},
		{Date: on, Ticker: "SAP.XETRA", Quantity: Q(5), Price: M(220.0, "USD"), Action: Buy},
	}
	_, err := CombineAndSort(rows)
	var mismatch *CurrencyMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("want CurrencyMismatchError, got %v", err)
	}
	if mismatch.Have != "EUR" || mismatch.Got != "USD" {
		t.Errorf("error carries %s and %s, want EUR and USD", mismatch.Have, mismatch.Got)
	}
}

func TestCombineRejectsMalformedAction(t *testing.T) {
	rows := []RawTransaction{
		{Date: MustParseDate("2024-01-01"), Ticker: "AAPL.US", Quantity: Q(1), Price: M(1.0, "USD"), Action: Action("TRANSFER")},
	}
	_, err := CombineAndSort(rows)
	var malformed *MalformedActionError
	if !errors.As(err, &malformed) {
		t.Fatalf("want MalformedActionError, got %v", err)
	}
}
