package ir

import "strings"

type SegmentKind string

const (
	FixedString SegmentKind = "fixed"
	Param       SegmentKind = "param"

	// ParamGreedy consumes every remaining path component.
	ParamGreedy SegmentKind = "param_greedy"
)

type PathSegment struct {
	Kind  SegmentKind `yaml:"kind"`
	Value string      `yaml:"value"`
}

func (s PathSegment) IsParam() bool {
	return s.Kind == Param || s.Kind == ParamGreedy
}

func (s PathSegment) String() string {
	switch s.Kind {
	case Param:
		return "{" + s.Value + "}"
	case ParamGreedy:
		return "{" + s.Value + "...}"
	}

	return s.Value
}

type RouteDescriptor struct {
	Method   string `yaml:"method"`
	Nickname string `yaml:"nickname"`
	Summary  string `yaml:"summary,omitempty"`

	// BasePath is the literal prefix of the template before the first
	// parameter, without a trailing slash.
	BasePath string `yaml:"basePath"`

	// Path is the whole template without a trailing slash.
	Path string `yaml:"path"`

	Segments       []PathSegment `yaml:"segments"`
	MandatoryQuery []string      `yaml:"mandatoryQuery,omitempty"`

	// Enums holds a lookup helper for every enum valued parameter and for an
	// enum valued return type.
	Enums []EnumWrapper `yaml:"enums,omitempty"`
}

// Pattern renders the segments back into a readable template, marking
// greedy parameters with `...`.
func (r *RouteDescriptor) Pattern() string {
	parts := make([]string, len(r.Segments))

	for i, s := range r.Segments {
		parts[i] = s.String()
	}

	return "/" + strings.Join(parts, "/")
}

func (r *RouteDescriptor) FindEnum(name string) (*EnumWrapper, bool) {
	for i := range r.Enums {
		if r.Enums[i].Name == name {
			return &r.Enums[i], true
		}
	}

	return nil, false
}
