package investing

import "testing"

func TestMoneyArithmetic(t *testing.T) {
	a := M(10.5, "USD")
	b := M(4.5, "USD")

	if got := a.Add(b); !got.Equal(M(15.0, "USD")) {
		t.Errorf("Add = %s, want $15", got)
	}
	if got := a.Sub(b); !got.Equal(M(6.0, "USD")) {
		t.Errorf("Sub = %s, want $6", got)
	}
	if got := a.Mul(Q(2)); !got.Equal(M(21.0, "USD")) {
		t.Errorf("Mul = %s, want $21", got)
	}
	if got := a.Div(Q(2)); !got.Equal(M(5.25, "USD")) {
		t.Errorf("Div = %s, want $5.25", got)
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// the zero Money has no currency and adopts the other operand's.
	var zero Money
	got := zero.Add(M(100.0, "EUR"))
	if got.Currency() != "EUR" {
		t.Errorf("currency = %q, want EUR", got.Currency())
	}
}

func TestMoneyMismatchedCurrencyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding USD and EUR should panic")
		}
	}()
	M(1.0, "USD").Add(M(1.0, "EUR"))
}

func TestMoneyConvert(t *testing.T) {
	got := M(100.0, "EUR").Convert(1.1, "USD")
	if got.Currency() != "USD" {
		t.Errorf("currency = %q, want USD", got.Currency())
	}
	if !got.Equal(M(110.0, "USD")) {
		t.Errorf("Convert = %s, want $110", got)
	}
}

func TestPercentFromFactor(t *testing.T) {
	tests := []struct {
		factor float64
		want   Percent
	}{
		{1, 0},
		{1.2, 20},
		{0.85, -15},
		{1.001, 0.1},
		{2, 100},
	}
	for _, tt := range tests {
		if got := NewPercent(tt.factor); !got.Equal(tt.want) {
			t.Errorf("NewPercent(%v) = %s, want %s", tt.factor, got, tt.want)
		}
	}
}

func TestPercentSignedString(t *testing.T) {
	tests := []struct {
		p    Percent
		want string
	}{
		{20, "+20.0%"},
		{-15, "-15.0%"},
		{0, "-"},
	}
	for _, tt := range tests {
		if got := tt.p.SignedString(); got != tt.want {
			t.Errorf("SignedString(%v) = %q, want %q", float64(tt.p), got, tt.want)
		}
	}
}
