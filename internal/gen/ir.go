package gen

import (
	"bytes"
	"fmt"

	"github.com/koskimas/json2code/internal/ir"
	"gopkg.in/yaml.v3"
)

// irBackend dumps the unit as YAML.
type irBackend struct{}

func (irBackend) Render(unit *ir.Unit) ([]byte, error) {
	return marshalYaml(unit)
}

func marshalYaml(v any) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# " + generatedHeader + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf(`failed to marshal YAML: %w`, err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf(`failed to marshal YAML: %w`, err)
	}

	return buf.Bytes(), nil
}
