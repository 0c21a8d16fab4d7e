package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var amountNoise = strings.NewReplacer("₦", "", "$", "", "NGN", "", "USD", "", ",", "", " ", "", "\u00a0", "")

// parseAmount reads amounts as spreadsheets export them: "1,250,000.50", "₦ 3,000",
// "$12.5". An empty cell is zero.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := amountNoise.Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	return d, nil
}
