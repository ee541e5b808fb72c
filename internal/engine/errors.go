package engine

import (
	"errors"
	"fmt"

	"github.com/jsoncloak/jsoncloak/internal/types"
)

// ErrRootNotFound is returned by Run when the data root is missing or is not
// a directory.
var ErrRootNotFound = errors.New("data directory does not exist")

// ParseError reports malformed JSON after comment stripping. The file it
// names is left untouched.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failed read, write, hash or rename of a single file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ErrorKind classifies err for reporting. Unknown errors count as IO errors.
func ErrorKind(err error) types.ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return types.KindParse
	}
	return types.KindIO
}
