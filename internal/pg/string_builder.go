package pg

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// stringBuilder renders DDL. Lines written after `Indent` are prefixed with
// two spaces per level.
type stringBuilder struct {
	strings.Builder
	newLine bool
	indent  int
}

func (s *stringBuilder) Indent() {
	s.indent += 1
}

func (s *stringBuilder) DeIndent() {
	s.indent -= 1
}

func (s *stringBuilder) WriteNewLine() {
	_ = s.Builder.WriteByte('\n')
	s.newLine = true
}

func (s *stringBuilder) WriteString(str string) {
	s.checkNewline()
	_, _ = s.Builder.WriteString(str)
}

// WriteIdentifier writes a double quoted identifier. Multiple parts are
// joined with dots: `"schema"."table"`.
func (s *stringBuilder) WriteIdentifier(parts ...string) {
	s.WriteString(pgx.Identifier(parts).Sanitize())
}

// WriteLiteral writes a single quoted string literal.
func (s *stringBuilder) WriteLiteral(v string) {
	s.WriteString("'" + strings.ReplaceAll(v, "'", "''") + "'")
}

func (s *stringBuilder) checkNewline() {
	if s.newLine {
		s.newLine = false
		for i := 0; i < s.indent; i += 1 {
			_, _ = s.Builder.WriteString("  ")
		}
	}
}
