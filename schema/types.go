package schema

import "slices"

// Kind identifies the shape a variable's value must take
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindLiteral Kind = "literal"
	KindUnion   Kind = "union"
)

// String returns the kind name as used in schema files and error messages.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindLiteral, KindUnion:
		return true
	}
	return false
}

// Validator describes one declared variable: its kind and whether it may be unset.
// Validators are values; the constructors below are the only way to build one, and
// nothing mutates a Validator after construction.
type Validator struct {
	kind     Kind
	optional bool
	values   []string // literal constant (one) or union members (two or more)
}

// String declares a variable holding any non-empty string.
func String() Validator {
	return Validator{kind: KindString}
}

// Number declares a variable holding a finite float64.
func Number() Validator {
	return Validator{kind: KindNumber}
}

// Boolean declares a variable holding "true" or "false", case-insensitively.
func Boolean() Validator {
	return Validator{kind: KindBoolean}
}

// Literal declares a variable that must equal value exactly.
func Literal(value string) Validator {
	return Validator{kind: KindLiteral, values: []string{value}}
}

// Union declares a variable that must equal one of the given constants.
// The signature requires at least two members.
func Union(first, second string, more ...string) Validator {
	values := make([]string, 0, len(more)+2)
	values = append(values, first, second)
	values = append(values, more...)
	return Validator{kind: KindUnion, values: values}
}

// Optional wraps inner so that an unset variable resolves to no value instead of failing.
func Optional(inner Validator) Validator {
	inner.optional = true
	inner.values = slices.Clone(inner.values)
	return inner
}

// Kind returns the validator's kind tag.
func (v Validator) Kind() Kind {
	return v.kind
}

// IsOptional reports whether the variable may be unset.
func (v Validator) IsOptional() bool {
	return v.optional
}

// Values returns the literal constant or union members. Empty for other kinds.
func (v Validator) Values() []string {
	return slices.Clone(v.values)
}

// Accepts reports whether s is one of the validator's constants.
// Only meaningful for literal and union validators.
func (v Validator) Accepts(s string) bool {
	return slices.Contains(v.values, s)
}

// Equal reports whether two validators describe the same shape.
func (v Validator) Equal(other Validator) bool {
	return v.kind == other.kind && v.optional == other.optional && slices.Equal(v.values, other.values)
}
