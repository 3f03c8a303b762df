package convexenv

import (
	"fmt"
	"strconv"
	"strings"

	"convexenv/schema"
)

// Validate reports whether a transformed value satisfies the validator's shape.
// nil (no value) is always valid.
func Validate(v schema.Validator, value any) bool {
	if value == nil {
		return true
	}

	switch v.Kind() {
	case schema.KindString:
		_, ok := value.(string)
		return ok
	case schema.KindNumber:
		_, ok := value.(float64)
		return ok
	case schema.KindBoolean:
		_, ok := value.(bool)
		return ok
	case schema.KindLiteral, schema.KindUnion:
		s, ok := value.(string)
		return ok && v.Accepts(s)
	}
	return false
}

// validationError names the kind that rejected the value and, for literal and
// union kinds, the accepted constants.
func validationError(v schema.Validator) error {
	switch v.Kind() {
	case schema.KindLiteral, schema.KindUnion:
		quoted := make([]string, 0, len(v.Values()))
		for _, c := range v.Values() {
			quoted = append(quoted, strconv.Quote(c))
		}
		return fmt.Errorf("%w (expected %s of %s)", ErrValidation, v.Kind(), strings.Join(quoted, ", "))
	}
	return fmt.Errorf("%w (expected %s)", ErrValidation, v.Kind())
}
