package budget

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/text/currency"
)

const (
	NameMaxLength                  = 255
	DescriptionMaxLength           = 5000
	AllocationDescriptionMaxLength = 500

	// MaxLimitsPerWorkspace is the number of spending limits a single
	// workspace can hold.
	MaxLimitsPerWorkspace = 100

	// AmountScale is the number of fractional digits of all amounts.
	AmountScale = 2
)

var (
	MinAmount = decimal.RequireFromString("0.01")
	MaxAmount = decimal.RequireFromString("999999999.99")

	hundred = decimal.NewFromInt(100)
)

// SupportedCurrencies lists the ISO 4217 codes budgets and limits can be
// denominated in.
var SupportedCurrencies = []string{
	"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "INR", "LKR",
	"SGD", "NZD", "SEK", "NOK", "DKK", "HKD", "KRW", "MXN", "BRL", "ZAR",
}

// now is the clock of the package. Timestamps are truncated to microseconds
// so that they survive a round trip through any supported database.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NormalizeCurrency upper-cases a currency code and verifies that it is a
// well-formed ISO 4217 code from SupportedCurrencies.
func NormalizeCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", ErrInvalidCurrency
	}

	if !slices.Contains(SupportedCurrencies, unit.String()) {
		return "", ErrInvalidCurrency
	}

	return unit.String(), nil
}

// validatePositiveAmount verifies that an amount is in [MinAmount, MaxAmount]
// with at most AmountScale fractional digits.
func validatePositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return validateAmountBounds(amount)
}

// validateNonNegativeAmount is validatePositiveAmount that also accepts zero.
func validateNonNegativeAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrAmountNegative
	}

	return validateAmountBounds(amount)
}

func validateAmountBounds(amount decimal.Decimal) error {
	if amount.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}

	if !amount.Equal(amount.Round(AmountScale)) {
		return ErrAmountPrecision
	}

	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > NameMaxLength {
		return "", ErrInvalidName
	}

	return name, nil
}

// normalizeDescription trims a description. Empty descriptions become nil.
func normalizeDescription(description string, maxLength int, tooLong error) (*string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, nil
	}

	if len([]rune(description)) > maxLength {
		return nil, tooLong
	}

	return &description, nil
}

// percentOf returns part as a percentage of whole. whole must not be zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	return part.Div(whole).Mul(hundred)
}
