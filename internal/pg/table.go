package pg

type Table struct {
	Name          *TableName
	Comment       string
	Columns       []*Column
	ColumnsByName map[string]*Column
}

type TableName struct {
	Name   string
	Schema string
}

func NewTable(name TableName) *Table {
	return &Table{
		Name:          &name,
		Columns:       make([]*Column, 0),
		ColumnsByName: make(map[string]*Column),
	}
}

func (t *Table) AddColumn(col *Column) {
	t.ColumnsByName[col.Name] = col
	t.Columns = append(t.Columns, col)
}

// writeCreate writes a `CREATE TABLE` statement terminated by a semicolon.
func (t *Table) writeCreate(s *stringBuilder) {
	if t.Comment != "" {
		s.WriteString("-- ")
		s.WriteString(t.Comment)
		s.WriteNewLine()
	}

	s.WriteString("CREATE TABLE ")
	t.Name.string(s)
	s.WriteString(" (")

	if len(t.Columns) == 0 {
		s.WriteString(");")
		s.WriteNewLine()
		return
	}

	s.WriteNewLine()
	s.Indent()

	for i, c := range t.Columns {
		c.writeString(s)

		if i != len(t.Columns)-1 {
			s.WriteString(",")
		}

		s.WriteNewLine()
	}

	s.DeIndent()
	s.WriteString(");")
	s.WriteNewLine()
}

func (t *Table) String() string {
	var s stringBuilder
	t.writeCreate(&s)
	return s.String()
}

func NewTableName(name string, schema ...string) TableName {
	var t TableName

	t.Name = name
	if len(schema) > 0 {
		t.Schema = schema[0]
	}

	return t
}

func (n *TableName) HasSchema() bool {
	return len(n.Schema) != 0
}

func (n *TableName) string(s *stringBuilder) {
	if n.HasSchema() {
		s.WriteIdentifier(n.Schema, n.Name)
		return
	}

	s.WriteIdentifier(n.Name)
}

func (n *TableName) String() string {
	var s stringBuilder
	n.string(&s)
	return s.String()
}
