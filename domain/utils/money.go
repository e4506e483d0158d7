package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places money is displayed and stored with
const MoneyPlaces = 2

var centsPerUnit = decimal.NewFromInt(100)

// RoundMoney rounds an amount to cents, half away from zero
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// ToCents converts an amount to integer cents after rounding
func ToCents(amount decimal.Decimal) int64 {
	return RoundMoney(amount).Mul(centsPerUnit).IntPart()
}

// FromCents converts integer cents to a 2-place decimal amount
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MoneyPlaces)
}

// FromUnits converts a whole-unit amount to a decimal amount
func FromUnits(units int64) decimal.Decimal {
	return decimal.NewFromInt(units)
}

// FormatMoney formats an amount as dollars, e.g. $33.33 or -$15.00
func FormatMoney(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return fmt.Sprintf("-$%s", amount.Neg().StringFixed(MoneyPlaces))
	}
	return fmt.Sprintf("$%s", amount.StringFixed(MoneyPlaces))
}

// FormatNet formats a net result with an explicit sign, e.g. +$13.33
func FormatNet(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + FormatMoney(amount)
	}
	return FormatMoney(amount)
}
