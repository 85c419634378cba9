package ir

type OperationKind string

const (
	// CopyConstruct builds a new record by copying every field of another
	// record of the same type.
	CopyConstruct OperationKind = "copy"

	// AssignFrom copies every field, by name, from any value that provides
	// the record's accessor capability.
	AssignFrom OperationKind = "assign"

	// UpdateInto copies every field, by name, into any value that provides
	// the record's setter capability.
	UpdateInto OperationKind = "update"
)

// Operation describes a record level copy contract. `Fields` lists the field
// names copied, in declaration order.
type Operation struct {
	Kind   OperationKind `yaml:"kind"`
	Fields []string      `yaml:"fields"`
}

// Capability is an explicit contract a foreign value must satisfy to take
// part in AssignFrom or UpdateInto. Backends render it as an interface with
// one accessor per field.
type Capability struct {
	Name    string  `yaml:"name"`
	Fields  []Field `yaml:"fields"`
	Setters bool    `yaml:"setters"`
}

type Record struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Fields      []Field       `yaml:"fields"`
	Enums       []EnumWrapper `yaml:"enums,omitempty"`
	Operations  []Operation   `yaml:"operations"`
}

func (r *Record) FindField(name string) (*Field, bool) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i], true
		}
	}

	return nil, false
}

// FindEnum returns the enum wrapper with the given type name.
func (r *Record) FindEnum(typeName string) (*EnumWrapper, bool) {
	for i := range r.Enums {
		if r.Enums[i].TypeName() == typeName {
			return &r.Enums[i], true
		}
	}

	return nil, false
}

func (r *Record) FindOperation(kind OperationKind) (*Operation, bool) {
	for i := range r.Operations {
		if r.Operations[i].Kind == kind {
			return &r.Operations[i], true
		}
	}

	return nil, false
}

// Accessors is the capability AssignFrom requires from its source.
func (r *Record) Accessors() Capability {
	return Capability{
		Name:   r.Name + "Fields",
		Fields: r.Fields,
	}
}

// Setters is the capability UpdateInto requires from its destination.
func (r *Record) Setters() Capability {
	return Capability{
		Name:    r.Name + "Setter",
		Fields:  r.Fields,
		Setters: true,
	}
}
