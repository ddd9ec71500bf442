package shipping

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every price the shop displays.
const CurrencySymbol = "£"

var digitsRe = regexp.MustCompile(`\d+`)

// ParseAmount reads the whole-unit amount out of a "£NN" string. Thousands
// separators are ignored, then the first run of digits wins. Strings without
// digits parse as zero.
func ParseAmount(s string) decimal.Decimal {
	m := digitsRe.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders a whole-unit price, e.g. "£133".
func FormatAmount(d decimal.Decimal) string {
	return CurrencySymbol + d.Truncate(0).String()
}
