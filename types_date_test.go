package investing

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-02-01", NewDate(2024, time.February, 1)},
		{"2024-2-1", NewDate(2024, time.February, 1)},
		{"1-2-2024", NewDate(2024, time.February, 1)},
		{" 2024-02-01 ", NewDate(2024, time.February, 1)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []string{"", "2024/02/01", "not a date", "2024-13-01"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q): want error, got none", in)
		}
	}
}

func TestDateSub(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-01-02", "2024-01-01", 1},
		{"2024-03-01", "2024-01-01", 60}, // leap year
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-02", -1},
	}
	for _, tt := range tests {
		got := MustParseDate(tt.a).Sub(MustParseDate(tt.b))
		if got != tt.want {
			t.Errorf("%s.Sub(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDateAdd(t *testing.T) {
	got := MustParseDate("2024-02-28").Add(2)
	want := MustParseDate("2024-03-01")
	if got != want {
		t.Errorf("Add(2) = %s, want %s", got, want)
	}
}

func TestDateJSON(t *testing.T) {
	on := MustParseDate("2024-06-10")
	data, err := json.Marshal(on)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2024-06-10"` {
		t.Errorf("Marshal = %s, want %q", data, `"2024-06-10"`)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != on {
		t.Errorf("round trip = %s, want %s", back, on)
	}
}
