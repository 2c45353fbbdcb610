// Package money converts between integer centavos and pt-BR currency strings.
package money

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Symbol is the currency prefix used in every rendered amount.
const Symbol = "R$"

var (
	ErrEmptyAmount       = errors.New("money: amount is empty")
	ErrInvalidAmount     = errors.New("money: amount is not a valid number")
	ErrNonPositiveAmount = errors.New("money: amount must be greater than zero")
)

// A lone dot followed by exactly three digits is read as a thousands mark ("1.234").
var thousandsGroup = regexp.MustCompile(`^\d+\.\d{3}$`)

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// Format renders an amount in centavos as "R$ 1.234,56" (negative: "-R$ 8,00").
func Format(amountMinor int64) string {
	neg := amountMinor < 0
	abs := uint64(amountMinor)
	if neg {
		abs = uint64(-(amountMinor + 1)) + 1
	}

	units := strconv.FormatUint(abs/100, 10)
	cents := abs % 100

	var b strings.Builder
	b.Grow(len(units) + len(units)/3 + 8)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(Symbol)
	b.WriteByte(' ')

	rem := len(units) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(units[:rem])
	for i := rem; i < len(units); i += 3 {
		b.WriteByte('.')
		b.WriteString(units[i : i+3])
	}

	b.WriteByte(',')
	if cents < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatUint(cents, 10))
	return b.String()
}

// ParseUserAmount reads a free-form amount typed by an operator and returns
// centavos. Empty, malformed or non-positive input yields 0.
func ParseUserAmount(input string) int64 {
	v, err := ParseUserAmountStrict(input)
	if err != nil {
		return 0
	}
	return v
}

// ParseUserAmountStrict is ParseUserAmount with the failure reason reported.
//
// Both "1.234,56" and "1,234.56" read as 123456: whichever of comma and dot
// appears last is the decimal mark and the other one is a thousands mark.
func ParseUserAmountStrict(input string) (int64, error) {
	raw := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == 'R' || r == '$' {
			return -1
		}
		return r
	}, input)
	if raw == "" {
		return 0, ErrEmptyAmount
	}
	if strings.HasPrefix(raw, "-") {
		return 0, ErrNonPositiveAmount
	}

	normalized := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, normalizeSeparators(raw))
	normalized = strings.TrimSuffix(normalized, ".")
	if strings.HasPrefix(normalized, ".") {
		normalized = "0" + normalized
	}
	if normalized == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if !cents.IsPositive() {
		return 0, ErrNonPositiveAmount
	}
	if cents.GreaterThan(maxMinor) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

func normalizeSeparators(raw string) string {
	lastComma := strings.LastIndex(raw, ",")
	lastDot := strings.LastIndex(raw, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			return strings.Replace(strings.ReplaceAll(raw, ".", ""), ",", ".", 1)
		}
		return strings.ReplaceAll(raw, ",", "")
	case lastComma >= 0:
		return strings.Replace(raw, ",", ".", 1)
	case strings.Count(raw, ".") > 1 || thousandsGroup.MatchString(raw):
		return strings.ReplaceAll(raw, ".", "")
	}
	return raw
}
