// Package pathdesc is the runtime support imported by Go code generated by
// json2code.
package pathdesc

import (
	"errors"
	"fmt"
	"strings"
)

type ComponentType int

const (
	// FixedString matches one literal path component.
	FixedString ComponentType = iota

	// Param captures exactly one path component.
	Param

	// ParamUntilEndOfPath captures every remaining path component.
	ParamUntilEndOfPath
)

func (t ComponentType) String() string {
	switch t {
	case FixedString:
		return "fixed"
	case Param:
		return "param"
	case ParamUntilEndOfPath:
		return "param_until_end_of_path"
	}

	return "unknown"
}

type Component struct {
	Name string
	Type ComponentType
}

// Description binds an HTTP method and a path template to an operation.
type Description struct {
	// Base is the literal prefix of the path before the first parameter.
	Base       string
	Path       string
	Method     string
	Nickname   string
	Components []Component

	// Mandatory lists query parameters a request must carry.
	Mandatory []string
}

// MissingMandatory returns the mandatory query parameters `has` reports as
// absent, in declaration order.
func (d *Description) MissingMandatory(has func(name string) bool) []string {
	missing := make([]string, 0)

	for _, m := range d.Mandatory {
		if !has(m) {
			missing = append(missing, m)
		}
	}

	return missing
}

// Template renders the components back into a path template.
func (d *Description) Template() string {
	parts := make([]string, len(d.Components))

	for i, c := range d.Components {
		switch c.Type {
		case FixedString:
			parts[i] = c.Name
		case Param:
			parts[i] = "{" + c.Name + "}"
		case ParamUntilEndOfPath:
			parts[i] = "{" + c.Name + "...}"
		}
	}

	return "/" + strings.Join(parts, "/")
}

var ErrOrdinalMismatch = errors.New("enumerations have a different number of values")

// Enum is implemented by every generated enum type. Values are identified by
// their ordinal position; `NumItems()` is the out-of-domain sentinel.
type Enum interface {
	Ordinal() int
	NumItems() int
}

// ConvertOrdinal returns the ordinal of `from` for use in an enumeration of
// `numItems` values. The two enumerations correspond by position, not by
// symbol name, so they must have the same number of values.
func ConvertOrdinal(from Enum, numItems int) (int, error) {
	if from.NumItems() != numItems {
		return numItems, fmt.Errorf("%w: %d != %d", ErrOrdinalMismatch, from.NumItems(), numItems)
	}

	o := from.Ordinal()
	if o < 0 || o >= numItems {
		return numItems, nil
	}

	return o, nil
}

// NamedEnum is an Enum whose values also have a symbolic form.
type NamedEnum interface {
	Enum
	String() string
}

// Symbol returns the symbol of `from`. Out-of-domain values have no symbol.
func Symbol(from NamedEnum) (string, bool) {
	o := from.Ordinal()
	if o < 0 || o >= from.NumItems() {
		return "", false
	}

	return from.String(), true
}
