// Package swagger reads API description files into `model.Document`s.
//
// Two dialects are accepted. A file that is a well-formed JSON object is a
// Swagger 1.2 style document with `apis` and `models`. Anything else is
// treated as a Swagger 2.0 style fragment: the body of a `paths` object,
// possibly starting with a comma, that becomes parseable once wrapped in
// braces. The models of a fragment live in a sidecar file with the same base
// name and a `.def.json` suffix.
package swagger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/koskimas/json2code/internal/model"
	"gopkg.in/yaml.v3"
)

const sidecarSuffix = ".def.json"

var leadingComma = regexp.MustCompile(`^\s*,`)

type dialect string

const (
	dialectLegacy   dialect = "legacy"
	dialectFragment dialect = "fragment"
)

type Options struct {
	// Validate enables structural validation of the raw input against the
	// embedded JSON schemas.
	Validate bool
}

type Loader struct {
	opts      Options
	validator *validator
}

func NewLoader(opts Options) (*Loader, error) {
	l := &Loader{opts: opts}

	if opts.Validate {
		v, err := newValidator()
		if err != nil {
			return nil, err
		}

		l.validator = v
	}

	return l, nil
}

// Load reads `filePath` and, for fragments, its sidecar.
func (l *Loader) Load(filePath string) (*model.Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf(`failed to read API file "%s": %w`, filePath, err)
	}

	doc, err := l.parse(filePath, data)
	if err != nil {
		return nil, model.WithFile(err, filePath)
	}

	return doc, nil
}

func (l *Loader) parse(filePath string, data []byte) (*model.Document, error) {
	root, raw, kind, err := parseWithFallback(data)
	if err != nil {
		return nil, model.Errorf(model.MalformedInput, "bad formatted JSON file").Wrap(err)
	}

	doc := &model.Document{File: filePath}

	if kind == dialectLegacy {
		if err := l.validate(schemaLegacy, raw); err != nil {
			return nil, err
		}

		if err := decodeLegacy(root, doc); err != nil {
			return nil, err
		}

		return doc, nil
	}

	if err := l.validate(schemaPaths, raw); err != nil {
		return nil, err
	}

	apis, err := decodePaths(root)
	if err != nil {
		return nil, err
	}

	doc.APIs = apis

	models, err := l.loadSidecar(filePath)
	if err != nil {
		return nil, err
	}

	doc.Models = models
	return doc, nil
}

// loadSidecar reads the models of a fragment. A missing sidecar simply
// means that no models are declared.
func (l *Loader) loadSidecar(filePath string) ([]model.ModelDef, error) {
	sidecar := SidecarPath(filePath)

	data, err := os.ReadFile(sidecar)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(`failed to read definition file "%s": %w`, sidecar, err)
	}

	root, raw, _, err := parseWithFallback(data)
	if err != nil {
		e := model.Errorf(model.MalformedInput, `bad formatted JSON definition file "%s"`, sidecar).Wrap(err)
		e.File = sidecar
		return nil, e
	}

	if err := l.validate(schemaDefinitions, raw); err != nil {
		return nil, model.WithFile(err, sidecar)
	}

	models, err := decodeModels(unwrapDefinitions(root))
	if err != nil {
		return nil, model.WithFile(err, sidecar)
	}

	return models, nil
}

func (l *Loader) validate(schema string, raw any) error {
	if l.validator == nil {
		return nil
	}

	if err := l.validator.Validate(schema, raw); err != nil {
		return model.Errorf(model.MalformedInput, "document doesn't match the %s schema", schema).Wrap(err)
	}

	return nil
}

// SidecarPath returns the path of the model definition file of `filePath`.
func SidecarPath(filePath string) string {
	return strings.TrimSuffix(filePath, ".json") + sidecarSuffix
}

// IsSidecar is true for model definition files.
func IsSidecar(filePath string) bool {
	return strings.HasSuffix(filePath, sidecarSuffix)
}

// parseWithFallback parses `data` as is and, if that fails, as a fragment
// wrapped in braces. The returned node is the root mapping of the document.
func parseWithFallback(data []byte) (*yaml.Node, any, dialect, error) {
	raw, err := unmarshalRaw(data)
	if err == nil {
		root, err := parseNode(data)
		return root, raw, dialectLegacy, err
	}

	wrapped := WrapFragment(data)

	raw, wrapErr := unmarshalRaw(wrapped)
	if wrapErr != nil {
		return nil, nil, "", wrapErr
	}

	root, err := parseNode(wrapped)
	return root, raw, dialectFragment, err
}

// WrapFragment turns an object body into an object. A leading comma is
// blanked out rather than removed so that line and column numbers of the
// wrapped document match the original.
func WrapFragment(data []byte) []byte {
	body := bytes.Clone(data)

	if loc := leadingComma.FindIndex(body); loc != nil {
		body[loc[1]-1] = ' '
	}

	wrapped := make([]byte, 0, len(body)+2)
	wrapped = append(wrapped, '{')
	wrapped = append(wrapped, body...)
	wrapped = append(wrapped, '}')

	return wrapped
}

func unmarshalRaw(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	if dec.More() {
		return nil, errors.New("unexpected data after the top-level value")
	}

	if _, ok := raw.(map[string]any); !ok {
		return nil, errors.New("top-level value is not an object")
	}

	return raw, nil
}
