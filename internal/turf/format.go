package turf

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders a count with thousands separators for the KPI widgets
// ("12,345"), matching how the dashboards display every total.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatRate renders a support rate as a percentage with one decimal, or
// "N/A" when the rate is not applicable.
func FormatRate(rate *float64) string {
	if rate == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *rate*100)
}
