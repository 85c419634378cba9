package types

import (
	"github.com/koskimas/json2code/internal/ir"
	"github.com/koskimas/json2code/internal/model"
)

var primitives = map[string]ir.Primitive{
	"string":   ir.String,
	"int":      ir.Int,
	"double":   ir.Double,
	"float":    ir.Float,
	"long":     ir.Long,
	"boolean":  ir.Bool,
	"char":     ir.Char,
	"datetime": ir.DateTime,
}

// Map converts the declared type of a non-enum property into a semantic
// type. Named references must already be in the table.
func Map(t *Table, p *model.PropertyDef) (ir.Type, error) {
	if p.Type == model.TypeArray {
		if p.Items == nil {
			return ir.Type{}, model.Errorf(model.MalformedSchema, "array without item declaration").InProperty(p)
		}

		token := p.Items.Token()
		if token == "" {
			return ir.Type{}, model.Errorf(model.MalformedSchema, "array items with no type or ref declaration").InProperty(p)
		}

		elem, err := MapToken(t, token)
		if err != nil {
			return ir.Type{}, withProperty(err, p)
		}

		return ir.List(elem), nil
	}

	token := p.TypeToken()
	if token == "" {
		return ir.Type{}, model.Errorf(model.MalformedSchema, "property has no type or ref declaration").InProperty(p)
	}

	typ, err := MapToken(t, token)
	if err != nil {
		return ir.Type{}, withProperty(err, p)
	}

	return typ, nil
}

// MapToken maps a single type token. Arrays of arrays are not expressible
// in the schema, so the token never denotes a list.
func MapToken(t *Table, token string) (ir.Type, error) {
	if p, ok := primitives[token]; ok {
		return ir.Scalar(p), nil
	}

	if token == model.TypeArray {
		return ir.Type{}, model.Errorf(model.MalformedSchema, "nested arrays are not supported")
	}

	if !t.Has(token) {
		return ir.Type{}, model.Errorf(model.UnknownType, `type "%s" is not defined`, token)
	}

	return ir.Ref(token), nil
}

func withProperty(err error, p *model.PropertyDef) error {
	if e, ok := err.(*model.Error); ok {
		return e.InProperty(p)
	}

	return err
}
