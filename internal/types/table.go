package types

import "github.com/koskimas/json2code/internal/model"

// Table is the registry of names that denote valid types. It's created once
// per run, seeded with the primitives, and only ever grows: a model resolved
// while processing one file stays referenceable from every later file.
type Table struct {
	known map[string]struct{}
	order []string
}

func NewTable() *Table {
	t := &Table{
		known: make(map[string]struct{}),
		order: make([]string, 0),
	}

	for _, p := range model.PrimitiveTokens() {
		t.Add(p)
	}

	return t
}

// Add registers `name`. Adding a name twice is a no-op.
func (t *Table) Add(name string) {
	if _, ok := t.known[name]; ok {
		return
	}

	t.known[name] = struct{}{}
	t.order = append(t.order, name)
}

func (t *Table) Has(name string) bool {
	_, ok := t.known[name]
	return ok
}

func (t *Table) Len() int {
	return len(t.order)
}

// Names returns the registered names in registration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}
