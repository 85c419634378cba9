// Package synth builds record IR nodes from resolved models.
package synth

import (
	"github.com/koskimas/json2code/internal/ir"
	"github.com/koskimas/json2code/internal/model"
	"github.com/koskimas/json2code/internal/types"
)

// Records synthesizes a record for every model named in `order`. `order`
// must be dependency-first (see `resolve.Order`). Each completed record is
// registered in `table` so that later records and later files can refer to
// it.
func Records(doc *model.Document, order []string, table *types.Table) ([]ir.Record, error) {
	records := make([]ir.Record, 0, len(order))

	for _, name := range order {
		m, ok := doc.FindModel(name)
		if !ok {
			return nil, model.Errorf(model.UnknownType, `model "%s" is not declared`, name)
		}

		r, err := Record(m, table)
		if err != nil {
			return nil, err
		}

		records = append(records, *r)
	}

	return records, nil
}

// Record synthesizes one record and registers its name in `table`.
func Record(m *model.ModelDef, table *types.Table) (*ir.Record, error) {
	r := &ir.Record{
		Name:        m.Name,
		Description: m.Description,
		Fields:      make([]ir.Field, 0, len(m.Properties)),
		Enums:       make([]ir.EnumWrapper, 0),
	}

	for i := range m.Properties {
		p := &m.Properties[i]

		f, err := field(r, m, p, table)
		if err != nil {
			return nil, err
		}

		r.Fields = append(r.Fields, *f)
	}

	r.Operations = operations(r)
	table.Add(r.Name)

	return r, nil
}

func field(r *ir.Record, m *model.ModelDef, p *model.PropertyDef, table *types.Table) (*ir.Field, error) {
	f := &ir.Field{
		Name:        p.Name,
		Description: p.Description,
		Required:    m.IsRequired(p.Name),
	}

	if p.Kind() == model.KindEnum {
		e := NewEnum(m.Name, p.Name, p.Enum)
		r.Enums = append(r.Enums, e)
		f.Type = ir.Enum(e.TypeName())
		return f, nil
	}

	t, err := types.Map(table, p)
	if err != nil {
		if e, ok := err.(*model.Error); ok {
			return nil, e.InModel(m)
		}

		return nil, err
	}

	f.Type = t
	return f, nil
}

// NewEnum creates an enum wrapper scoped to (owner, name). The values are
// kept in declaration order, which is also the matching order.
func NewEnum(owner string, name string, values []string) ir.EnumWrapper {
	vals := make([]string, len(values))
	copy(vals, values)

	return ir.EnumWrapper{
		Owner:  owner,
		Name:   name,
		Values: vals,
	}
}

func operations(r *ir.Record) []ir.Operation {
	names := make([]string, len(r.Fields))

	for i, f := range r.Fields {
		names[i] = f.Name
	}

	return []ir.Operation{
		{Kind: ir.CopyConstruct, Fields: names},
		{Kind: ir.AssignFrom, Fields: names},
		{Kind: ir.UpdateInto, Fields: names},
	}
}
