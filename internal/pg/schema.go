package pg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/koskimas/json2code/internal/ptr"
	pg_query "github.com/pganalyze/pg_query_go/v5"
)

// Migrate applies the up section of a migration to `db`. Only `CREATE TABLE`
// statements are supported.
func Migrate(db *DB, sql string) error {
	ast, err := pg_query.Parse(omitDownMigration(sql))
	if err != nil {
		return fmt.Errorf(`failed to parse AST: %w`, err)
	}

	for _, s := range ast.GetStmts() {
		switch node := s.GetStmt().GetNode().(type) {
		case *pg_query.Node_CreateStmt:
			if err := createTable(db, node.CreateStmt); err != nil {
				return fmt.Errorf(`failed to parse a create table statement: %w`, err)
			}
		default:
			return fmt.Errorf(`unsupported statement %T`, node)
		}
	}

	return nil
}

func createTable(db *DB, stmt *pg_query.CreateStmt) error {
	rel := stmt.GetRelation()
	if rel == nil {
		return errors.New("no relation")
	}

	name := rel.GetRelname()
	if len(name) == 0 {
		return errors.New("empty table name")
	}

	table := NewTable(NewTableName(name, rel.GetSchemaname()))
	for _, c := range stmt.GetTableElts() {
		def := c.GetColumnDef()
		if def == nil {
			return fmt.Errorf(`unsupported element in table "%s"`, name)
		}

		col, err := parseColumnDef(def)
		if err != nil {
			return err
		}

		table.AddColumn(col)
	}

	return db.AddTable(table)
}

func parseColumnDef(def *pg_query.ColumnDef) (*Column, error) {
	col := Column{
		Name: def.GetColname(),
	}

	if t, err := parseColumnType(def); err != nil {
		return nil, fmt.Errorf(`failed to parse type for column "%s": %w`, col.Name, err)
	} else {
		col.Type = *t
	}

	if check, err := parseCheck(def); err != nil {
		return nil, fmt.Errorf(`failed to parse check constraint for column "%s": %w`, col.Name, err)
	} else {
		col.Check = check
	}

	return &col, nil
}

func parseColumnType(def *pg_query.ColumnDef) (*DataType, error) {
	typeName := def.GetTypeName()
	if typeName == nil {
		return nil, errors.New("no type name")
	}

	t, err := parseTypeName(typeName)
	if err != nil {
		return nil, err
	}

	t.NotNull = isNotNull(def)
	return t, nil
}

func parseTypeName(typeName *pg_query.TypeName) (*DataType, error) {
	t := &DataType{}

	names := typeName.GetNames()
	if len(names) == 2 {
		t.Schema = ptr.V(getString(names[0]))
		t.Name = getString(names[1])
	} else if len(names) == 1 {
		t.Name = getString(names[0])
	} else {
		return nil, fmt.Errorf("a surprising amount of names (%d) in a type name", len(names))
	}

	t.Name = strings.ToLower(t.Name)
	if t.Schema != nil {
		t.Schema = ptr.V(strings.ToLower(*t.Schema))
	}

	return t, nil
}

func isNotNull(def *pg_query.ColumnDef) bool {
	for _, c := range def.GetConstraints() {
		switch c.GetConstraint().GetContype() {
		case pg_query.ConstrType_CONSTR_NOTNULL, pg_query.ConstrType_CONSTR_PRIMARY:
			return true
		}
	}

	return false
}

// parseCheck reads the value list of a `CHECK (col IN (...))` constraint.
func parseCheck(def *pg_query.ColumnDef) ([]string, error) {
	for _, c := range def.GetConstraints() {
		con := c.GetConstraint()
		if con.GetContype() != pg_query.ConstrType_CONSTR_CHECK {
			continue
		}

		expr := con.GetRawExpr().GetAExpr()
		if expr == nil || expr.GetKind() != pg_query.A_Expr_Kind_AEXPR_IN {
			return nil, errors.New("only IN lists are supported")
		}

		items := expr.GetRexpr().GetList().GetItems()
		values := make([]string, 0, len(items))

		for _, item := range items {
			values = append(values, item.GetAConst().GetSval().GetSval())
		}

		return values, nil
	}

	return nil, nil
}

func getString(node *pg_query.Node) string {
	return node.GetString_().GetSval()
}

func omitDownMigration(m string) string {
	lines := make([]string, 0)

	for _, l := range strings.Split(m, "\n") {
		if isDownMigrationStartLine(l) {
			break
		}

		lines = append(lines, l)
	}

	return strings.Join(lines, "\n")
}

func isDownMigrationStartLine(l string) bool {
	return strings.HasPrefix(l, downMigrationMarker)
}
