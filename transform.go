package convexenv

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"convexenv/schema"
)

// Transform converts one raw value into the Go value its validator implies:
// string for string, literal and union kinds, float64 for number, bool for
// boolean. An absent value transforms to nil whatever the validator says;
// whether absence is allowed is decided by the caller.
func Transform(raw string, present bool, v schema.Validator) (any, error) {
	if !present {
		return nil, nil
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyValue
	}

	switch v.Kind() {
	case schema.KindString, schema.KindLiteral, schema.KindUnion:
		return raw, nil
	case schema.KindNumber:
		return parseNumber(raw)
	case schema.KindBoolean:
		return parseBoolean(raw)
	}
	return nil, ErrUnsupportedKind
}

// decimalNumber is the decimal grammar a number variable accepts: an optional
// sign, then Infinity or digits with an optional fraction and exponent.
var decimalNumber = regexp.MustCompile(`^[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)$`)

// parseNumber accepts unsigned 0x, 0o and 0b integers and the decimal
// grammar above. Go-only forms (digit separators, hex floats, inf, nan)
// are not numbers.
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)

	if base := radixOf(s); base != 0 {
		return parseRadix(s[2:], base)
	}
	if !decimalNumber.MatchString(s) {
		return 0, ErrNotANumber
	}
	if strings.HasSuffix(s, "Infinity") {
		return 0, ErrNotAFiniteNumber
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat reports overflow as ErrRange with n = ±Inf
		if errors.Is(err, strconv.ErrRange) && math.IsInf(n, 0) {
			return 0, ErrNotAFiniteNumber
		}
		return 0, ErrNotANumber
	}
	return n, nil
}

func radixOf(s string) int {
	if len(s) < 2 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// parseRadix converts digits of any length; values past float64 range are
// not finite.
func parseRadix(digits string, base int) (float64, error) {
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return 0, ErrNotANumber
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, ErrNotANumber
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	if math.IsInf(f, 0) {
		return 0, ErrNotAFiniteNumber
	}
	return f, nil
}

func parseBoolean(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, ErrNotABoolean
}
