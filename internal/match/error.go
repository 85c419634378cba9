package match

import "fmt"

type MatchError struct {
	Message string
	Record  string
	Field   string
}

func (e *MatchError) Error() string {
	return e.Message
}

func matchErrorf(record string, field string, format string, args ...any) *MatchError {
	return &MatchError{
		Message: fmt.Sprintf(format, args...),
		Record:  record,
		Field:   field,
	}
}
