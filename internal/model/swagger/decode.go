package swagger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/koskimas/json2code/internal/model"
	"gopkg.in/yaml.v3"
)

var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
}

// decodeLegacy reads `{"apis": [...], "models": {...}}`.
func decodeLegacy(root *yaml.Node, doc *model.Document) error {
	if apis := get(root, "apis"); apis != nil {
		if apis.Kind != yaml.SequenceNode {
			return malformedAt(apis, `"apis" is not an array`)
		}

		for _, a := range apis.Content {
			api, err := decodeLegacyAPI(a)
			if err != nil {
				return err
			}

			doc.APIs = append(doc.APIs, *api)
		}
	}

	if models := get(root, "models"); models != nil {
		m, err := decodeModels(models)
		if err != nil {
			return err
		}

		doc.Models = m
	}

	return nil
}

func decodeLegacyAPI(n *yaml.Node) (*model.API, error) {
	if n.Kind != yaml.MappingNode {
		return nil, malformedAt(n, "api is not an object")
	}

	api := &model.API{
		Path: str(n, "path"),
		Line: n.Line,
	}

	ops := get(n, "operations")
	if ops == nil {
		return api, nil
	}

	if ops.Kind != yaml.SequenceNode {
		return nil, malformedAt(ops, `"operations" of "%s" is not an array`, api.Path)
	}

	for _, o := range ops.Content {
		if o.Kind != yaml.MappingNode {
			return nil, malformedAt(o, `operation of "%s" is not an object`, api.Path)
		}

		r, err := decodeOperation(o, api.Path, str(o, "method"), "nickname", nil)
		if err != nil {
			return nil, err
		}

		api.Operations = append(api.Operations, *r)
	}

	return api, nil
}

// decodePaths reads a Swagger 2.0 paths object. Every HTTP method of a path
// item becomes an operation whose nickname is its `operationId`. Parameters
// declared on the path item apply to all of its operations.
func decodePaths(root *yaml.Node) ([]model.API, error) {
	apis := make([]model.API, 0)

	err := forEach(root, func(path string, item *yaml.Node) error {
		if item.Kind != yaml.MappingNode {
			return malformedAt(item, `path "%s" is not an object`, path)
		}

		api := model.API{Path: path, Line: item.Line}

		var shared []model.ParameterDef
		if ps := get(item, "parameters"); ps != nil {
			p, err := decodeParameters(ps)
			if err != nil {
				return err
			}

			shared = p
		}

		err := forEach(item, func(method string, op *yaml.Node) error {
			if !httpMethods[strings.ToLower(method)] {
				return nil
			}

			if op.Kind != yaml.MappingNode {
				return malformedAt(op, `operation "%s %s" is not an object`, method, path)
			}

			r, err := decodeOperation(op, path, method, "operationId", shared)
			if err != nil {
				return err
			}

			api.Operations = append(api.Operations, *r)
			return nil
		})

		if err != nil {
			return err
		}

		apis = append(apis, api)
		return nil
	})

	return apis, err
}

func decodeOperation(n *yaml.Node, path string, method string, nicknameKey string, shared []model.ParameterDef) (*model.RouteDef, error) {
	r := &model.RouteDef{
		Path:     path,
		Method:   strings.ToUpper(method),
		Nickname: str(n, nicknameKey),
		Summary:  str(n, "summary"),
		Line:     n.Line,
	}

	if r.Nickname == "" {
		return nil, malformedAt(n, `"%s" not found in operation "%s %s"`, nicknameKey, r.Method, path)
	}

	if ps := get(n, "parameters"); ps != nil {
		params, err := decodeParameters(ps)
		if err != nil {
			return nil, err
		}

		r.Parameters = params
	}

	for _, p := range shared {
		if _, ok := r.FindParameter(p.Name); !ok {
			r.Parameters = append(r.Parameters, p)
		}
	}

	enum, err := strs(get(n, "enum"))
	if err != nil {
		return nil, err
	}

	r.Enum = enum
	return r, nil
}

func decodeParameters(n *yaml.Node) ([]model.ParameterDef, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, malformedAt(n, `"parameters" is not an array`)
	}

	params := make([]model.ParameterDef, 0, len(n.Content))

	for _, pn := range n.Content {
		if pn.Kind != yaml.MappingNode {
			return nil, malformedAt(pn, "parameter is not an object")
		}

		p := model.ParameterDef{
			Name:      str(pn, "name"),
			ParamType: str(pn, "paramType"),
			In:        str(pn, "in"),
			Type:      str(pn, "type"),
			Line:      pn.Line,
		}

		var err error
		if p.Required, err = boolean(get(pn, "required")); err != nil {
			return nil, err
		}
		if p.AllowMultiple, err = boolean(get(pn, "allowMultiple")); err != nil {
			return nil, err
		}
		if p.Enum, err = strs(get(pn, "enum")); err != nil {
			return nil, err
		}

		params = append(params, p)
	}

	return params, nil
}

// decodeModels reads a mapping of model name to model.
func decodeModels(n *yaml.Node) ([]model.ModelDef, error) {
	if n.Kind != yaml.MappingNode {
		return nil, malformedAt(n, "models is not an object")
	}

	if k := duplicateKey(n); k != nil {
		return nil, malformedAt(k, `model "%s" is declared more than once`, k.Value)
	}

	models := make([]model.ModelDef, 0, len(n.Content)/2)

	err := forEach(n, func(name string, mn *yaml.Node) error {
		m, err := decodeModel(name, mn)
		if err != nil {
			return err
		}

		models = append(models, *m)
		return nil
	})

	return models, err
}

func decodeModel(name string, n *yaml.Node) (*model.ModelDef, error) {
	if n.Kind != yaml.MappingNode {
		return nil, malformedAt(n, `model "%s" is not an object`, name)
	}

	m := &model.ModelDef{
		Name:        name,
		Description: str(n, "description"),
		Line:        n.Line,
	}

	required, err := strs(get(n, "required"))
	if err != nil {
		return nil, err
	}

	m.Required = required

	props := get(n, "properties")
	if props == nil {
		return m, nil
	}

	if props.Kind != yaml.MappingNode {
		return nil, malformedAt(props, `"properties" of model "%s" is not an object`, name)
	}

	if k := duplicateKey(props); k != nil {
		return nil, malformedAt(k, `property "%s" of model "%s" is declared more than once`, k.Value, name)
	}

	err = forEach(props, func(pname string, pn *yaml.Node) error {
		if pn.Kind != yaml.MappingNode {
			return malformedAt(pn, `property "%s" of model "%s" is not an object`, pname, name)
		}

		p := model.PropertyDef{
			Name:        pname,
			Description: str(pn, "description"),
			Type:        str(pn, "type"),
			Ref:         str(pn, "$ref"),
			Line:        pn.Line,
		}

		if items := get(pn, "items"); items != nil {
			p.Items = &model.ItemsDef{
				Type: str(items, "type"),
				Ref:  str(items, "$ref"),
			}
		}

		enum, err := strs(get(pn, "enum"))
		if err != nil {
			return err
		}

		p.Enum = enum
		m.Properties = append(m.Properties, p)
		return nil
	})

	return m, err
}

// unwrapDefinitions accepts sidecars that wrap their models in a
// `definitions` object.
func unwrapDefinitions(root *yaml.Node) *yaml.Node {
	if len(root.Content) == 2 && root.Content[0].Value == "definitions" && root.Content[1].Kind == yaml.MappingNode {
		return root.Content[1]
	}

	return root
}

func forEach(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}

	return nil
}

// duplicateKey returns the second occurrence of the first key that appears
// more than once in a mapping.
func duplicateKey(n *yaml.Node) *yaml.Node {
	seen := make(map[string]bool, len(n.Content)/2)

	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if seen[k.Value] {
			return k
		}

		seen[k.Value] = true
	}

	return nil
}

func get(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}

	return nil
}

func str(n *yaml.Node, key string) string {
	v := get(n, key)
	if v == nil || v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
		return ""
	}

	return v.Value
}

func strs(n *yaml.Node) ([]string, error) {
	if n == nil {
		return nil, nil
	}

	if n.Kind != yaml.SequenceNode {
		return nil, malformedAt(n, "expected an array of values")
	}

	out := make([]string, 0, len(n.Content))
	for _, v := range n.Content {
		if v.Kind != yaml.ScalarNode {
			return nil, malformedAt(v, "expected a scalar value")
		}

		out = append(out, v.Value)
	}

	return out, nil
}

// boolean accepts both JSON booleans and the strings "true" and "false".
func boolean(n *yaml.Node) (bool, error) {
	if n == nil || n.Tag == "!!null" {
		return false, nil
	}

	if n.Kind != yaml.ScalarNode {
		return false, malformedAt(n, "expected a boolean")
	}

	b, err := strconv.ParseBool(n.Value)
	if err != nil {
		return false, malformedAt(n, `expected a boolean, got "%s"`, n.Value)
	}

	return b, nil
}

func malformedAt(n *yaml.Node, format string, args ...any) *model.Error {
	e := model.Errorf(model.MalformedInput, "%s", fmt.Sprintf(format, args...))
	e.Line = n.Line
	return e
}
