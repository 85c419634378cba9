// Package route compiles operation path templates into route descriptors.
package route

import (
	"regexp"
	"strings"

	"github.com/koskimas/json2code/internal/ir"
	"github.com/koskimas/json2code/internal/model"
	"github.com/koskimas/json2code/internal/synth"
)

// ReturnType is the enum wrapper name used for an operation level enum.
const ReturnType = "return_type"

var paramRegex = regexp.MustCompile(`^\{\s*([^\}]*)\}`)

// Compile builds the route descriptor of one operation.
func Compile(r *model.RouteDef) (*ir.RouteDescriptor, error) {
	path := trimTrailingSlash(r.Path)

	d := &ir.RouteDescriptor{
		Method:         strings.ToUpper(r.Method),
		Nickname:       r.Nickname,
		Summary:        r.Summary,
		Path:           path,
		BasePath:       basePath(path),
		Segments:       make([]ir.PathSegment, 0),
		MandatoryQuery: make([]string, 0),
		Enums:          make([]ir.EnumWrapper, 0),
	}

	segments, err := Segments(r, path)
	if err != nil {
		return nil, err
	}

	d.Segments = segments
	d.MandatoryQuery = MandatoryQuery(r)
	d.Enums = Enums(r)

	return d, nil
}

// CompileAll compiles every route in order and fails on the first error.
func CompileAll(routes []model.RouteDef) ([]ir.RouteDescriptor, error) {
	out := make([]ir.RouteDescriptor, 0, len(routes))

	for i := range routes {
		d, err := Compile(&routes[i])
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}

// Segments splits `path` on slashes and classifies every component. Empty
// components and parameters with an empty name are skipped.
func Segments(r *model.RouteDef, path string) ([]ir.PathSegment, error) {
	segments := make([]ir.PathSegment, 0)

	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}

		name, isParam := paramName(part)
		if !isParam {
			segments = append(segments, ir.PathSegment{Kind: ir.FixedString, Value: part})
			continue
		}

		if name == "" {
			continue
		}

		p, ok := r.FindParameter(name)
		if !ok {
			return nil, model.Errorf(model.MissingParameterDeclaration, `no parameter declaration found for "%s"`, name).InRoute(r)
		}

		kind := ir.Param
		if p.AllowMultiple {
			kind = ir.ParamGreedy
		}

		segments = append(segments, ir.PathSegment{Kind: kind, Value: name})
	}

	return segments, nil
}

// MandatoryQuery returns the names of the required query parameters in
// declaration order.
func MandatoryQuery(r *model.RouteDef) []string {
	names := make([]string, 0)

	for i := range r.Parameters {
		if r.Parameters[i].IsRequiredQuery() {
			names = append(names, r.Parameters[i].Name)
		}
	}

	return names
}

// Enums creates a lookup helper for the operation's enum valued return type
// and for every enum valued parameter, in that order.
func Enums(r *model.RouteDef) []ir.EnumWrapper {
	enums := make([]ir.EnumWrapper, 0)

	if len(r.Enum) > 0 {
		enums = append(enums, synth.NewEnum(r.Nickname, ReturnType, r.Enum))
	}

	for _, p := range r.Parameters {
		if len(p.Enum) > 0 {
			enums = append(enums, synth.NewEnum(r.Nickname, p.Name, p.Enum))
		}
	}

	return enums
}

func paramName(segment string) (string, bool) {
	m := paramRegex.FindStringSubmatch(segment)
	if m == nil {
		return "", false
	}

	return strings.TrimSpace(m[1]), true
}

func trimTrailingSlash(path string) string {
	if path == "" || path[len(path)-1] != '/' {
		return path
	}

	return path[:len(path)-1]
}

func basePath(path string) string {
	i := strings.IndexByte(path, '{')
	if i < 0 {
		return path
	}

	return trimTrailingSlash(path[:i])
}
