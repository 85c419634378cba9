package swagger

import (
	"bytes"
	_ "embed"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://github.com/koskimas/json2code/input.schema.json"

const (
	schemaLegacy      = "legacy"
	schemaPaths       = "paths"
	schemaDefinitions = "definitions"
)

//go:embed input.schema.json
var inputSchema []byte

type validator struct {
	schemas map[string]*jsonschema.Schema
}

func newValidator() (*validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	if err := compiler.AddResource(schemaURL, bytes.NewReader(inputSchema)); err != nil {
		return nil, fmt.Errorf("failed to add input schema resource: %w", err)
	}

	v := &validator{
		schemas: make(map[string]*jsonschema.Schema),
	}

	for _, name := range []string{schemaLegacy, schemaPaths, schemaDefinitions} {
		s, err := compiler.Compile(fmt.Sprintf("%s#/definitions/%s", schemaURL, name))
		if err != nil {
			return nil, fmt.Errorf(`failed to compile input schema "%s": %w`, name, err)
		}

		v.schemas[name] = s
	}

	return v, nil
}

func (v *validator) Validate(name string, raw any) error {
	s, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf(`unknown input schema "%s"`, name)
	}

	return s.Validate(raw)
}
