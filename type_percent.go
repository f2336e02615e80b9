package investing

import (
	"fmt"
	"math"
)

// Percent is a return expressed in percent, rounded to one decimal for display.
type Percent float64

// NewPercent converts a return factor (1.0 = flat) into a Percent rounded to
// one decimal, the precision used in published figures.
func NewPercent(factor float64) Percent {
	return Percent(math.Round((factor-1)*1000) / 10)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.1f%%", float64(p))
	if res == "+0.0%" {
		return "-"
	}
	return res
}
