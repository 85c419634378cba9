package pg

import "github.com/jackc/pgx/v5/pgtype"

const (
	DataTypeText        = "text"
	DataTypeChar        = "bpchar"
	DataTypeInt4        = "int4"
	DataTypeInt8        = "int8"
	DataTypeFloat4      = "float4"
	DataTypeFloat8      = "float8"
	DataTypeBool        = "bool"
	DataTypeTimestamptz = "timestamptz"
	DataTypeJsonb       = "jsonb"
)

var typeMap = pgtype.NewMap()

// KnownType is true for the type names pgx has a codec for.
func KnownType(name string) bool {
	_, ok := typeMap.TypeForName(name)
	return ok
}

type DataType struct {
	Name    string
	Schema  *string
	NotNull bool
}

func (d *DataType) Json() bool {
	return d.Name == DataTypeJsonb || d.Name == "json"
}

func (d *DataType) writeString(s *stringBuilder) {
	if d.Schema != nil {
		s.WriteString(*d.Schema)
		s.WriteString(".")
	}

	s.WriteString(d.Name)

	if d.NotNull {
		s.WriteString(" NOT NULL")
	}
}

func (d *DataType) String() string {
	var s stringBuilder
	d.writeString(&s)
	return s.String()
}
