package gen

import (
	"fmt"

	"github.com/koskimas/json2code/internal/ir"
	"github.com/koskimas/json2code/internal/match"
	"github.com/koskimas/json2code/internal/pg"
)

var sqlScalarTypes = map[ir.Primitive]string{
	ir.String:   pg.DataTypeText,
	ir.Int:      pg.DataTypeInt4,
	ir.Long:     pg.DataTypeInt8,
	ir.Float:    pg.DataTypeFloat4,
	ir.Double:   pg.DataTypeFloat8,
	ir.Bool:     pg.DataTypeBool,
	ir.Char:     pg.DataTypeChar,
	ir.DateTime: pg.DataTypeTimestamptz,
}

// sqlBackend renders the records of a unit as a goose migration with one
// table per record.
type sqlBackend struct {
	schema string
}

func (b *sqlBackend) Render(unit *ir.Unit) ([]byte, error) {
	tables := make([]*pg.Table, 0, len(unit.Records))

	for i := range unit.Records {
		t, err := b.table(&unit.Records[i])
		if err != nil {
			return nil, fmt.Errorf(`failed to generate SQL for "%s": %w`, unit.File, err)
		}

		tables = append(tables, t)
	}

	sql := pg.Migration(generatedHeader, tables)

	if err := verify(unit, tables, sql); err != nil {
		return nil, fmt.Errorf(`failed to verify SQL generated for "%s": %w`, unit.File, err)
	}

	return []byte(sql), nil
}

// verify parses the generated SQL back and checks that each parsed table
// can hold its record.
func verify(unit *ir.Unit, tables []*pg.Table, sql string) error {
	db, err := pg.Parse(sql)
	if err != nil {
		return err
	}

	if len(db.Tables) != len(tables) {
		return fmt.Errorf(`expected %d tables, parsed %d`, len(tables), len(db.Tables))
	}

	for i, r := range unit.Records {
		parsed := db.Tables[i]

		if *parsed.Name != *tables[i].Name {
			return fmt.Errorf(`expected table %s, parsed %s`, tables[i].Name, parsed.Name)
		}

		if err := match.DoesTablePopulateRecord(*parsed, r); err != nil {
			return err
		}
	}

	return nil
}

func (b *sqlBackend) table(r *ir.Record) (*pg.Table, error) {
	t := pg.NewTable(pg.NewTableName(snakeName(r.Name), b.schema))
	t.Comment = oneLine(r.Description)

	for _, fd := range r.Fields {
		col, err := sqlColumn(r, fd)
		if err != nil {
			return nil, err
		}

		if _, ok := t.ColumnsByName[col.Name]; ok {
			return nil, fmt.Errorf(`record "%s" has more than one field named "%s" in SQL`, r.Name, col.Name)
		}

		t.AddColumn(col)
	}

	return t, nil
}

func sqlColumn(r *ir.Record, fd ir.Field) (*pg.Column, error) {
	col := &pg.Column{
		Name: snakeName(fd.Name),
		Type: pg.DataType{
			Name:    sqlTypeName(fd.Type),
			NotNull: fd.Required,
		},
	}

	if col.Name == "" {
		return nil, fmt.Errorf(`field "%s" of record "%s" has no usable SQL name`, fd.Name, r.Name)
	}

	if !pg.KnownType(col.Type.Name) {
		return nil, fmt.Errorf(`unknown postgres type "%s" for field "%s" of record "%s"`, col.Type.Name, fd.Name, r.Name)
	}

	if fd.Type.Kind == ir.KindEnum {
		e, ok := r.FindEnum(fd.Type.Enum)
		if !ok {
			return nil, fmt.Errorf(`enum "%s" of record "%s" not found`, fd.Type.Enum, r.Name)
		}

		col.Check = e.Values
	}

	return col, nil
}

func sqlTypeName(t ir.Type) string {
	switch t.Kind {
	case ir.KindRef, ir.KindList:
		return pg.DataTypeJsonb
	case ir.KindEnum:
		return pg.DataTypeText
	}

	if name, ok := sqlScalarTypes[t.Primitive]; ok {
		return name
	}

	return pg.DataTypeText
}
