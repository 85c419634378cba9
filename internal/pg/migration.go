package pg

const (
	upMigrationMarker   = "-- +goose Up"
	downMigrationMarker = "-- +goose Down"
)

// Migration renders a goose migration that creates `tables` in order and
// drops them in reverse order.
func Migration(header string, tables []*Table) string {
	var s stringBuilder

	if header != "" {
		s.WriteString("-- ")
		s.WriteString(header)
		s.WriteNewLine()
		s.WriteNewLine()
	}

	s.WriteString(upMigrationMarker)
	s.WriteNewLine()

	for _, t := range tables {
		s.WriteNewLine()
		t.writeCreate(&s)
	}

	s.WriteNewLine()
	s.WriteString(downMigrationMarker)
	s.WriteNewLine()

	for i := len(tables) - 1; i >= 0; i -= 1 {
		s.WriteString("DROP TABLE IF EXISTS ")
		tables[i].Name.string(&s)
		s.WriteString(";")
		s.WriteNewLine()
	}

	return s.String()
}

// Parse applies the up section of a migration to an empty database.
func Parse(sql string) (*DB, error) {
	db := NewDB()

	if err := Migrate(db, sql); err != nil {
		return nil, err
	}

	return db, nil
}
