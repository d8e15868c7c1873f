package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var yenPrinter = message.NewPrinter(language.Japanese)

// FormatYen renders a whole-yen amount with digit grouping, e.g. ¥1,234,567.
func FormatYen(amount decimal.Decimal) string {
	return yenPrinter.Sprintf("¥%d", amount.Round(0).IntPart())
}

// FormatRate renders a fraction as a percentage with one decimal place.
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
