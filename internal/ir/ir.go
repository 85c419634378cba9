// Package ir holds the language-neutral output of the compiler. Emission
// backends only ever see these types.
package ir

// Unit is everything compiled from one input file.
type Unit struct {
	File    string            `yaml:"file"`
	Base    string            `yaml:"base"`
	Records []Record          `yaml:"records"`
	Routes  []RouteDescriptor `yaml:"routes"`
}

type Primitive string

const (
	String   Primitive = "string"
	Int      Primitive = "int"
	Double   Primitive = "double"
	Float    Primitive = "float"
	Long     Primitive = "long"
	Bool     Primitive = "bool"
	Char     Primitive = "char"
	DateTime Primitive = "datetime"
)

type TypeKind string

const (
	KindScalar TypeKind = "scalar"
	KindRef    TypeKind = "ref"
	KindList   TypeKind = "list"
	KindEnum   TypeKind = "enum"
)

// Type is the semantic type of a field. Every non-list type is a single
// value slot.
type Type struct {
	Kind TypeKind `yaml:"kind"`

	// scalar
	Primitive Primitive `yaml:"primitive,omitempty"`

	// ref: name of a record
	Ref string `yaml:"ref,omitempty"`

	// list
	Elem *Type `yaml:"elem,omitempty"`

	// enum: name of an enum wrapper owned by the same record
	Enum string `yaml:"enum,omitempty"`
}

func Scalar(p Primitive) Type {
	return Type{Kind: KindScalar, Primitive: p}
}

func Ref(name string) Type {
	return Type{Kind: KindRef, Ref: name}
}

func List(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

func Enum(name string) Type {
	return Type{Kind: KindEnum, Enum: name}
}

func (t Type) String() string {
	switch t.Kind {
	case KindScalar:
		return string(t.Primitive)
	case KindRef:
		return t.Ref
	case KindList:
		return "list<" + t.Elem.String() + ">"
	case KindEnum:
		return t.Enum
	}

	return "?"
}

// Field is one property of a record. `Name` is the serialized name used on
// the wire.
type Field struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Type        Type   `yaml:"type"`
	Required    bool   `yaml:"required,omitempty"`
}
