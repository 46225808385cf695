package portfolio

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats a dollar amount with thousands separators and two
// decimal places, e.g. 1500 → "$1,500.00". The sign, when present, sits
// between the $ and the digits ("$-50.00").
func FormatMoney(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatPercent formats a percentage with an explicit leading sign and two
// decimal places, e.g. 3.448 → "+3.45%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}
