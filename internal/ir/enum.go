package ir

import (
	"errors"
	"fmt"
)

// UnknownValue is the serialized form of a value outside the declared domain.
const UnknownValue = "Unknown"

var ErrEnumShape = errors.New("enumerations have a different number of values")

// EnumWrapper is a closed, ordered set of symbolic values owned by a record
// property or an operation. Values are identified by their ordinal position.
// The ordinal `len(Values)` is the out-of-domain sentinel.
type EnumWrapper struct {
	Owner  string   `yaml:"owner"`
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// TypeName is the scoped name of the wrapper, `<owner>_<name>`.
func (e *EnumWrapper) TypeName() string {
	return e.Owner + "_" + e.Name
}

func (e *EnumWrapper) Sentinel() int {
	return len(e.Values)
}

func (e *EnumWrapper) Valid(v int) bool {
	return v >= 0 && v < len(e.Values)
}

// Lookup converts a serialized string into a domain value. The first
// matching value in declaration order wins. Strings outside the domain map
// to the sentinel instead of failing.
func (e *EnumWrapper) Lookup(s string) int {
	i := 0

	for ; i < len(e.Values); i += 1 {
		if e.Values[i] == s {
			return i
		}
	}

	return i
}

// Serialize converts a domain value into its string form. Values outside
// the domain serialize as `UnknownValue`.
func (e *EnumWrapper) Serialize(v int) string {
	if !e.Valid(v) {
		return UnknownValue
	}

	return e.Values[v]
}

// Items returns every value of the domain in declaration order, excluding
// the sentinel.
func (e *EnumWrapper) Items() []int {
	items := make([]int, len(e.Values))

	for i := range items {
		items[i] = i
	}

	return items
}

// ConvertByPosition converts a value of `from` into this domain by ordinal
// position: the n:th value of `from` becomes the n:th value of `e`, whatever
// the symbols are called. Both enumerations must have the same number of
// values. The sentinel of `from` maps to the sentinel of `e`.
func (e *EnumWrapper) ConvertByPosition(from *EnumWrapper, v int) (int, error) {
	if len(from.Values) != len(e.Values) {
		return e.Sentinel(), fmt.Errorf(`%w: %s has %d, %s has %d`, ErrEnumShape, from.TypeName(), len(from.Values), e.TypeName(), len(e.Values))
	}

	if !from.Valid(v) {
		return e.Sentinel(), nil
	}

	return v, nil
}

// ConvertByName converts a value of `from` into this domain by matching the
// declared symbol. Symbols `e` doesn't declare map to the sentinel.
func (e *EnumWrapper) ConvertByName(from *EnumWrapper, v int) int {
	if !from.Valid(v) {
		return e.Sentinel()
	}

	return e.Lookup(from.Values[v])
}
