package pg

import "fmt"

// DB is an ordered collection of tables.
type DB struct {
	Tables       []*Table
	TablesByName map[TableName]*Table
}

func NewDB() *DB {
	return &DB{
		Tables:       make([]*Table, 0),
		TablesByName: make(map[TableName]*Table),
	}
}

func (db *DB) AddTable(t *Table) error {
	if _, ok := db.TablesByName[*t.Name]; ok {
		return fmt.Errorf(`table "%s" already exists`, t.Name)
	}

	db.TablesByName[*t.Name] = t
	db.Tables = append(db.Tables, t)
	return nil
}

func (db *DB) Table(name TableName) (*Table, bool) {
	t, ok := db.TablesByName[name]
	return t, ok
}
