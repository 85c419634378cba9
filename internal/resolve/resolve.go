// Package resolve orders model declarations so that every model comes after
// all the models it references.
package resolve

import (
	"github.com/koskimas/json2code/internal/model"
	"github.com/koskimas/json2code/internal/types"
)

type resolver struct {
	doc     *model.Document
	table   *types.Table
	emitted map[string]struct{}
	order   []string
}

// Order returns the names of `doc.Models` in dependency-first order.
//
// Models are visited in declaration order. A model whose dependencies are
// all resolvable is emitted right away. Otherwise the model is pushed on a
// pending stack and its first unresolved dependency is attempted next. The
// names attempted since the last model declared in the document form the
// in-progress set: running into one of them again means there's a cycle.
//
// A dependency declared in `doc` is always emitted before its dependents even
// if an earlier file already registered the same name in `table`. Names not
// declared in `doc` are looked up from `table`. `table` is not modified.
func Order(doc *model.Document, table *types.Table) ([]string, error) {
	r := &resolver{
		doc:     doc,
		table:   table,
		emitted: make(map[string]struct{}),
		order:   make([]string, 0, len(doc.Models)),
	}

	for i := range doc.Models {
		if err := r.resolve(&doc.Models[i]); err != nil {
			return nil, err
		}
	}

	return r.order, nil
}

func (r *resolver) resolve(root *model.ModelDef) error {
	if r.isEmitted(root.Name) {
		return nil
	}

	inProgress := map[string]struct{}{root.Name: {}}
	pending := make([]*model.ModelDef, 0)
	current := root

	for {
		missing, err := r.firstUnresolved(current)
		if err != nil {
			return err
		}

		if missing == nil {
			r.emit(current.Name)

			if len(pending) == 0 {
				return nil
			}

			current = pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			continue
		}

		if _, ok := inProgress[missing.Name]; ok {
			return model.Errorf(model.CyclicDependency, `cyclic dependency found: "%s"`, missing.Name).InModel(missing)
		}

		inProgress[missing.Name] = struct{}{}
		pending = append(pending, current)
		current = missing
	}
}

// firstUnresolved returns the first model `m` depends on that hasn't been
// emitted yet, or nil if every property is resolvable.
func (r *resolver) firstUnresolved(m *model.ModelDef) (*model.ModelDef, error) {
	for i := range m.Properties {
		p := &m.Properties[i]

		if p.Kind() == model.KindEnum {
			continue
		}

		token, err := dependencyOf(p)
		if err != nil {
			return nil, err.InModel(m).InProperty(p)
		}

		if model.IsPrimitive(token) {
			continue
		}

		if dep, ok := r.doc.FindModel(token); ok {
			if !r.isEmitted(dep.Name) {
				return dep, nil
			}

			continue
		}

		if !r.table.Has(token) {
			return nil, model.Errorf(model.UnknownType, `unknown type "%s"`, token).InModel(m).InProperty(p)
		}
	}

	return nil, nil
}

func dependencyOf(p *model.PropertyDef) (string, *model.Error) {
	if p.Kind() == model.KindArray {
		if p.Items == nil {
			return "", model.Errorf(model.MalformedSchema, "array without item declaration")
		}

		if token := p.Items.Token(); token != "" {
			return token, nil
		}

		return "", model.Errorf(model.MalformedSchema, "array items with no type or ref declaration")
	}

	if token := p.TypeToken(); token != "" {
		return token, nil
	}

	return "", model.Errorf(model.MalformedSchema, "property has no type or ref declaration")
}

func (r *resolver) isEmitted(name string) bool {
	_, ok := r.emitted[name]
	return ok
}

func (r *resolver) emit(name string) {
	if r.isEmitted(name) {
		return
	}

	r.emitted[name] = struct{}{}
	r.order = append(r.order, name)
}
