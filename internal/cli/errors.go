package cli

import (
	"fmt"

	"formbench/internal/editor"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidValueError struct {
	flag  string
	value string
	want  string
}

func (e invalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q (expected %s)", e.flag, e.value, e.want)
}

func errInvalidValue(flag, value, want string) error {
	return invalidValueError{flag: flag, value: value, want: want}
}

func errIndex(op string, index, n int) error {
	return editor.IndexError{Op: op, Index: index, Len: n}
}
