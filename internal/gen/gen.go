// Package gen renders compiled units into files.
package gen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/koskimas/json2code/internal/ir"
)

const generatedHeader = "Code generated by json2code. DO NOT EDIT."

type Target string

const (
	TargetGo  Target = "go"
	TargetSQL Target = "sql"
	TargetIR  Target = "ir"
)

var targetExtensions = map[Target]string{
	TargetGo:  ".go",
	TargetSQL: ".sql",
	TargetIR:  ".ir.yaml",
}

type Options struct {
	Package   string
	SQLSchema string
	OutDir    string

	// Output replaces the base name of the generated files. Only makes sense
	// when a single unit is generated.
	Output string

	Targets []Target
}

// File is a rendered file that hasn't been written yet.
type File struct {
	Path string
	Data []byte
}

type backend interface {
	Render(unit *ir.Unit) ([]byte, error)
}

// Generator renders the units of one run. Units must be passed in
// processing order.
type Generator struct {
	opts     Options
	backends map[Target]backend
}

func NewGenerator(opts Options) (*Generator, error) {
	g := &Generator{
		opts:     opts,
		backends: make(map[Target]backend, len(opts.Targets)),
	}

	for _, t := range opts.Targets {
		switch t {
		case TargetGo:
			g.backends[t] = newGoBackend(opts.Package)
		case TargetSQL:
			g.backends[t] = &sqlBackend{schema: opts.SQLSchema}
		case TargetIR:
			g.backends[t] = irBackend{}
		default:
			return nil, fmt.Errorf(`unknown target "%s"`, t)
		}
	}

	return g, nil
}

// Generate renders `unit` with every target.
func (g *Generator) Generate(unit *ir.Unit) ([]File, error) {
	files := make([]File, 0, len(g.opts.Targets))

	for _, t := range g.opts.Targets {
		data, err := g.backends[t].Render(unit)
		if err != nil {
			return nil, err
		}

		files = append(files, File{
			Path: g.outputPath(unit, t),
			Data: data,
		})
	}

	return files, nil
}

func (g *Generator) outputPath(unit *ir.Unit, t Target) string {
	base := unit.Base
	if g.opts.Output != "" {
		base = strings.TrimSuffix(g.opts.Output, filepath.Ext(g.opts.Output))
	}

	return filepath.Join(g.opts.OutDir, base+targetExtensions[t])
}
