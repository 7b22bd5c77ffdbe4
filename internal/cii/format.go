package cii

import (
	"time"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/facturx/internal/decimal"
)

// UN/CEFACT date format code for compact calendar dates.
const dateFormat102 = "102"

// formatDate renders a date in the 8-digit YYYYMMDD form used with
// format code 102, e.g. 2024-03-14 -> "20240314".
func formatDate(t time.Time) string {
	return t.Format("20060102")
}

// formatAmount renders a monetary value with exactly 2 decimals regardless of
// the underlying precision.
func formatAmount(d decimal.Decimal) string {
	return money.FormatAmount(d)
}

// formatRate renders a VAT percentage with 2 decimals, e.g. "20.00".
func formatRate(d decimal.Decimal) string {
	return d.StringFixed(2)
}
