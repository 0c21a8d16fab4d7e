package report

import (
	"fmt"
	"math"
)

// PercentChange formats the change from previous to current as a whole percentage
// with an explicit sign: "+25%", "0%", "-20%". Growth from zero is "+100%".
func PercentChange(current, previous int) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}

		return "0%"
	}

	pct := int(math.Round(float64(current-previous) / float64(previous) * 100))

	switch {
	case pct > 0:
		return fmt.Sprintf("+%d%%", pct)
	case pct < 0:
		return fmt.Sprintf("%d%%", pct)
	}

	return "0%"
}
