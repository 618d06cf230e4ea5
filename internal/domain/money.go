package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrAmountOverflow is returned when a monetary computation exceeds the
// range of a 64-bit minor-unit amount. Silent wrapping is never acceptable
// for money, so every accumulation path checks for it.
var ErrAmountOverflow = errors.New("monetary amount overflows int64 minor units")

var (
	maxInt64Dec = decimal.NewFromInt(math.MaxInt64)
	minInt64Dec = decimal.NewFromInt(math.MinInt64)
)

// ToMinorUnits converts a major-unit decimal amount (e.g. 100.50) into
// integer minor units (10050), rounding half away from zero. The float
// crosses into decimal space exactly once; all scaling and rounding happens
// on the decimal side so 0.1 + 0.2 style artifacts cannot leak in.
func ToMinorUnits(major float64) int64 {
	return decimal.NewFromFloat(major).Shift(2).Round(0).IntPart()
}

// ToMajorUnits converts integer minor units back to a major-unit float.
// Display boundary only; never used mid-calculation.
func ToMajorUnits(minor int64) float64 {
	f, _ := decimal.NewFromInt(minor).Shift(-2).Float64()
	return f
}

// AddChecked adds two minor-unit amounts, returning ErrAmountOverflow
// instead of wrapping.
func AddChecked(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("adding %d and %d: %w", a, b, ErrAmountOverflow)
	}
	return sum, nil
}

// MulRateChecked multiplies a minor-unit amount by an FX rate and rounds
// half away from zero to the nearest minor unit. The result is range-checked
// before truncation to int64.
func MulRateChecked(amount int64, rate float64) (int64, error) {
	product := decimal.NewFromInt(amount).Mul(decimal.NewFromFloat(rate)).Round(0)
	if product.GreaterThan(maxInt64Dec) || product.LessThan(minInt64Dec) {
		return 0, fmt.Errorf("converting %d at rate %v: %w", amount, rate, ErrAmountOverflow)
	}
	return product.IntPart(), nil
}

// FormatCurrency renders a minor-unit amount as a human-readable string with
// a currency symbol, e.g. FormatCurrency(10050, "USD") == "$100.50".
// Zero-decimal currencies print without a fractional part.
func FormatCurrency(minor int64, currencyCode string) string {
	symbol := currencySymbol(currencyCode)
	decimals := currencyDecimals(currencyCode)
	if decimals == 0 {
		return fmt.Sprintf("%s%d", symbol, minor)
	}

	negative := minor < 0
	abs := minor
	if negative {
		abs = -abs
	}

	divisor := int64(1)
	for i := 0; i < decimals; i++ {
		divisor *= 10
	}

	format := fmt.Sprintf("%%d.%%0%dd", decimals)
	result := symbol + fmt.Sprintf(format, abs/divisor, abs%divisor)
	if negative {
		return "-" + result
	}
	return result
}

func currencySymbol(currencyCode string) string {
	symbols := map[string]string{
		"USD": "$",
		"EUR": "€",
		"GBP": "£",
		"JPY": "¥",
		"CAD": "C$",
		"AUD": "A$",
		"INR": "₹",
		"KRW": "₩",
	}
	if sym, ok := symbols[strings.ToUpper(currencyCode)]; ok {
		return sym
	}
	return strings.ToUpper(currencyCode) + " "
}

func currencyDecimals(currencyCode string) int {
	// Currencies whose minor unit is the major unit.
	zeroDecimal := map[string]bool{
		"JPY": true,
		"KRW": true,
		"VND": true,
		"CLP": true,
		"PYG": true,
		"IDR": true,
	}
	if zeroDecimal[strings.ToUpper(currencyCode)] {
		return 0
	}
	return 2
}
