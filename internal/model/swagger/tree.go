package swagger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseNode parses a JSON object into a yaml.v3 node tree. The tree keeps
// the declaration order of object keys and the line of every value, which
// the decoders rely on. The JSON is tokenized by encoding/json so that every
// valid JSON document is accepted, including `\/` escapes and long keys that
// a YAML parser rejects.
func parseNode(data []byte) (*yaml.Node, error) {
	p := &treeParser{
		data:  data,
		lines: lineStarts(data),
		dec:   json.NewDecoder(bytes.NewReader(data)),
	}

	p.dec.UseNumber()

	root, err := p.value()
	if err != nil {
		return nil, err
	}

	if _, err := p.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the top-level value")
	}

	if root.Kind != yaml.MappingNode {
		return nil, errors.New("top-level value is not an object")
	}

	return root, nil
}

type treeParser struct {
	data  []byte
	lines []int
	dec   *json.Decoder
}

func (p *treeParser) value() (*yaml.Node, error) {
	line := p.nextLine()

	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return p.object(line)
		case '[':
			return p.array(line)
		}

		return nil, fmt.Errorf(`unexpected "%s" on line %d`, t, line)
	case string:
		return scalar(line, "!!str", t), nil
	case json.Number:
		if strings.ContainsAny(t.String(), ".eE") {
			return scalar(line, "!!float", t.String()), nil
		}

		return scalar(line, "!!int", t.String()), nil
	case bool:
		if t {
			return scalar(line, "!!bool", "true"), nil
		}

		return scalar(line, "!!bool", "false"), nil
	case nil:
		return scalar(line, "!!null", "null"), nil
	}

	return nil, fmt.Errorf(`unexpected token %v on line %d`, tok, line)
}

func (p *treeParser) object(line int) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line}

	for p.dec.More() {
		keyLine := p.nextLine()

		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf(`object key on line %d is not a string`, keyLine)
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}

		n.Content = append(n.Content, scalar(keyLine, "!!str", key), v)
	}

	// closing brace
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}

func (p *treeParser) array(line int) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line}

	for p.dec.More() {
		v, err := p.value()
		if err != nil {
			return nil, err
		}

		n.Content = append(n.Content, v)
	}

	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}

// nextLine returns the line of the token the decoder reads next.
// `InputOffset` points right after the previous token, so whitespace and
// separators are skipped first.
func (p *treeParser) nextLine() int {
	off := int(p.dec.InputOffset())

	for off < len(p.data) && strings.IndexByte(" \t\r\n,:", p.data[off]) >= 0 {
		off += 1
	}

	return sort.SearchInts(p.lines, off+1)
}

// lineStarts returns the offset of the first byte of every line.
func lineStarts(data []byte) []int {
	starts := []int{0}

	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

func scalar(line int, tag string, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value, Line: line}
}
