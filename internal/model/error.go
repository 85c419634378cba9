package model

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	MalformedInput              ErrorKind = "malformed input"
	UnknownType                 ErrorKind = "unknown type"
	MalformedSchema             ErrorKind = "malformed schema"
	CyclicDependency            ErrorKind = "cyclic dependency"
	MissingParameterDeclaration ErrorKind = "missing parameter declaration"
)

var (
	ErrMalformedInput              = errors.New(string(MalformedInput))
	ErrUnknownType                 = errors.New(string(UnknownType))
	ErrMalformedSchema             = errors.New(string(MalformedSchema))
	ErrCyclicDependency            = errors.New(string(CyclicDependency))
	ErrMissingParameterDeclaration = errors.New(string(MissingParameterDeclaration))
)

// Error is returned for anything that makes an input file uncompilable.
// `File` is filled in by the caller that knows which file is being processed
// if the component that detected the error didn't know it.
type Error struct {
	Kind     ErrorKind
	Message  string
	File     string
	Line     int
	Model    string
	Property string
	Route    string
	Err      error
}

func (e *Error) Error() string {
	var s strings.Builder

	if e.File != "" {
		s.WriteString(e.File)

		if e.Line > 0 {
			fmt.Fprintf(&s, ":%d", e.Line)
		}

		s.WriteString(": ")
	}

	s.WriteString(string(e.Kind))
	s.WriteString(": ")
	s.WriteString(e.Message)

	context := make([]string, 0, 3)
	if e.Model != "" {
		context = append(context, fmt.Sprintf(`model "%s"`, e.Model))
	}
	if e.Property != "" {
		context = append(context, fmt.Sprintf(`property "%s"`, e.Property))
	}
	if e.Route != "" {
		context = append(context, fmt.Sprintf(`operation "%s"`, e.Route))
	}

	if len(context) > 0 {
		s.WriteString(" (")
		s.WriteString(strings.Join(context, ", "))
		s.WriteString(")")
	}

	if e.Err != nil {
		s.WriteString(": ")
		s.WriteString(e.Err.Error())
	}

	return s.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes `errors.Is(err, model.ErrCyclicDependency)` and friends work.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMalformedInput:
		return e.Kind == MalformedInput
	case ErrUnknownType:
		return e.Kind == UnknownType
	case ErrMalformedSchema:
		return e.Kind == MalformedSchema
	case ErrCyclicDependency:
		return e.Kind == CyclicDependency
	case ErrMissingParameterDeclaration:
		return e.Kind == MissingParameterDeclaration
	}

	return false
}

func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) InModel(m *ModelDef) *Error {
	e.Model = m.Name

	if e.Line == 0 {
		e.Line = m.Line
	}

	return e
}

func (e *Error) InProperty(p *PropertyDef) *Error {
	e.Property = p.Name

	if p.Line > 0 {
		e.Line = p.Line
	}

	return e
}

func (e *Error) InRoute(r *RouteDef) *Error {
	e.Route = r.Nickname

	if e.Line == 0 {
		e.Line = r.Line
	}

	return e
}

func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// WithFile sets the file of `err` if it's an `*Error` without one. Other
// errors are wrapped so that the file name is never lost.
func WithFile(err error, file string) error {
	var e *Error
	if errors.As(err, &e) {
		if e.File == "" {
			e.File = file
		}

		return err
	}

	return fmt.Errorf(`%s: %w`, file, err)
}
