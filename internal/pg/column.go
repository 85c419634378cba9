package pg

type Column struct {
	Name string
	Type DataType

	// Check lists the only values the column accepts. Rendered as a
	// `CHECK (col IN (...))` constraint.
	Check []string
}

func (c *Column) writeString(s *stringBuilder) {
	s.WriteIdentifier(c.Name)
	s.WriteString(" ")
	c.Type.writeString(s)

	if len(c.Check) == 0 {
		return
	}

	s.WriteString(" CHECK (")
	s.WriteIdentifier(c.Name)
	s.WriteString(" IN (")

	for i, v := range c.Check {
		if i > 0 {
			s.WriteString(", ")
		}

		s.WriteLiteral(v)
	}

	s.WriteString("))")
}

func (c *Column) String() string {
	var s stringBuilder
	c.writeString(&s)
	return s.String()
}
