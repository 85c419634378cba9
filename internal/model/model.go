package model

import (
	"slices"
	"strings"
)

// Location is where an operation parameter is carried in a request.
type Location string

const (
	LocationPath  Location = "path"
	LocationQuery Location = "query"
	LocationOther Location = "other"
)

// PropertyKind classifies a property declaration syntactically. Whether a
// reference actually resolves is decided later against the type table.
type PropertyKind string

const (
	KindPrimitive PropertyKind = "primitive"
	KindArray     PropertyKind = "array"
	KindReference PropertyKind = "reference"
	KindEnum      PropertyKind = "enum"
)

const TypeArray = "array"

const definitionsRef = "#/definitions/"

// Document is everything read from one input file (and its sidecar).
type Document struct {
	File   string
	APIs   []API
	Models []ModelDef
}

type API struct {
	Path       string
	Operations []RouteDef
	Line       int
}

type ModelDef struct {
	Name        string
	Description string
	Properties  []PropertyDef
	Required    []string
	Line        int
}

type PropertyDef struct {
	Name        string
	Description string
	Type        string
	Ref         string
	Items       *ItemsDef
	Enum        []string
	Line        int
}

type ItemsDef struct {
	Type string
	Ref  string
}

type RouteDef struct {
	Path       string
	Method     string
	Nickname   string
	Summary    string
	Parameters []ParameterDef
	Enum       []string
	Line       int
}

type ParameterDef struct {
	Name          string
	ParamType     string
	In            string
	Type          string
	Required      bool
	AllowMultiple bool
	Enum          []string
	Line          int
}

// FindModel returns the model called `name` declared in the document.
func (d *Document) FindModel(name string) (*ModelDef, bool) {
	for i := range d.Models {
		if d.Models[i].Name == name {
			return &d.Models[i], true
		}
	}

	return nil, false
}

// Routes flattens all operations of all APIs in declaration order.
func (d *Document) Routes() []RouteDef {
	routes := make([]RouteDef, 0)

	for _, api := range d.APIs {
		routes = append(routes, api.Operations...)
	}

	return routes
}

func (m *ModelDef) IsRequired(prop string) bool {
	return slices.Contains(m.Required, prop)
}

func (p *PropertyDef) Kind() PropertyKind {
	if len(p.Enum) > 0 {
		return KindEnum
	}

	if p.Type == TypeArray {
		return KindArray
	}

	if p.Type == "" && p.Ref != "" {
		return KindReference
	}

	if IsPrimitive(p.Type) {
		return KindPrimitive
	}

	return KindReference
}

// TypeToken returns the type name this property depends on. For arrays it is
// the item type. An empty token means the declaration is malformed.
func (p *PropertyDef) TypeToken() string {
	switch p.Kind() {
	case KindEnum:
		return ""
	case KindArray:
		if p.Items == nil {
			return ""
		}

		return p.Items.Token()
	}

	if p.Type != "" {
		return p.Type
	}

	return RefName(p.Ref)
}

func (i *ItemsDef) Token() string {
	if i.Type != "" {
		return i.Type
	}

	return RefName(i.Ref)
}

// Location classifies the parameter. Both the legacy `paramType` and the
// modern `in` attribute are honored.
func (p *ParameterDef) Location() Location {
	loc := p.In
	if p.ParamType != "" {
		loc = p.ParamType
	}

	switch Location(loc) {
	case LocationPath:
		return LocationPath
	case LocationQuery:
		return LocationQuery
	}

	return LocationOther
}

// IsRequiredQuery is true when the parameter is required and declared as a
// query parameter under either convention.
func (p *ParameterDef) IsRequiredQuery() bool {
	return p.Required && p.Location() == LocationQuery
}

func (r *RouteDef) FindParameter(name string) (*ParameterDef, bool) {
	for i := range r.Parameters {
		if r.Parameters[i].Name == name {
			return &r.Parameters[i], true
		}
	}

	return nil, false
}

// RefName strips the Swagger 2.0 definitions prefix from a `$ref`.
func RefName(ref string) string {
	return strings.TrimPrefix(ref, definitionsRef)
}
