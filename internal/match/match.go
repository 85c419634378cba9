package match

import (
	"slices"
	"strings"
	"unicode"

	"github.com/koskimas/json2code/internal/ir"
	"github.com/koskimas/json2code/internal/pg"
)

// compatibleTypes lists the postgres types that can hold each primitive.
var compatibleTypes = map[ir.Primitive][]string{
	ir.String:   {"text", "varchar", "character varying"},
	ir.Int:      {"int4", "int", "integer"},
	ir.Long:     {"int8", "bigint"},
	ir.Float:    {"float4", "real"},
	ir.Double:   {"float8", "double precision"},
	ir.Bool:     {"bool", "boolean"},
	ir.Char:     {"bpchar", "char", "character"},
	ir.DateTime: {"timestamptz", "timestamp with time zone"},
}

// DoesTablePopulateRecord checks that every field of `record` has a column
// in `table` that can hold its values. Returns a `MatchError` in case it
// doesn't.
func DoesTablePopulateRecord(table pg.Table, record ir.Record) error {
	for _, f := range record.Fields {
		column := findColumn(table, f.Name)

		if column == nil {
			return matchErrorf(record.Name, f.Name, `column missing for field %s.%s`, record.Name, f.Name)
		}

		if f.Required != column.Type.NotNull {
			return matchErrorf(record.Name, f.Name, `nullability of column "%s" doesn't match field %s.%s`, column.Name, record.Name, f.Name)
		}

		if err := doesColumnHoldType(record, f, column); err != nil {
			return err
		}
	}

	if len(table.Columns) != len(record.Fields) {
		return matchErrorf(record.Name, "", `table "%s" has %d columns but record %s has %d fields`, table.Name, len(table.Columns), record.Name, len(record.Fields))
	}

	return nil
}

func doesColumnHoldType(record ir.Record, f ir.Field, column *pg.Column) error {
	switch f.Type.Kind {
	case ir.KindRef, ir.KindList:
		if !column.Type.Json() {
			return matchErrorf(record.Name, f.Name, `invalid column type "%s" for %s field %s.%s`, column.Type.String(), f.Type, record.Name, f.Name)
		}
	case ir.KindEnum:
		e, ok := record.FindEnum(f.Type.Enum)
		if !ok {
			return matchErrorf(record.Name, f.Name, `enum "%s" not found for field %s.%s`, f.Type.Enum, record.Name, f.Name)
		}

		if !slices.Contains(compatibleTypes[ir.String], column.Type.Name) {
			return matchErrorf(record.Name, f.Name, `invalid column type "%s" for enum field %s.%s`, column.Type.String(), record.Name, f.Name)
		}

		if !slices.Equal(e.Values, column.Check) {
			return matchErrorf(record.Name, f.Name, `column "%s" accepts %v instead of %v`, column.Name, column.Check, e.Values)
		}
	case ir.KindScalar:
		if !slices.Contains(compatibleTypes[f.Type.Primitive], column.Type.Name) {
			return matchErrorf(record.Name, f.Name, `invalid column type "%s" for %s field %s.%s`, column.Type.String(), f.Type, record.Name, f.Name)
		}
	}

	return nil
}

func findColumn(table pg.Table, field string) *pg.Column {
	norm := Normalize(field)

	for _, c := range table.Columns {
		if Normalize(c.Name) == norm {
			return c
		}
	}

	return nil
}

// Normalize makes `petId`, `pet_id` and `Pet-ID` compare equal.
func Normalize(name string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, name)
}
