package output

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	dec "github.com/rpgo/savings-projector/pkg/decimal"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatCurrencyGrouped formats a decimal as USD with thousands separators ($1,234.56).
func FormatCurrencyGrouped(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	if rounded.IsNegative() {
		return "-" + FormatCurrencyGrouped(rounded.Neg())
	}
	return "$" + printer.Sprintf("%.2f", rounded.InexactFloat64())
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.07) as a percentage (7.00%).
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(dec.Percent(rate))
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
