package facet

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	ErrNoVertices        = errors.New("facet: no vertices")
	ErrDimensionMismatch = errors.New("facet: vertices of different dimensions")
	ErrRankTooLow        = errors.New("facet: faceting needs a polytope of rank 2 or more")
	ErrBadConfig         = errors.New("facet: invalid configuration")
)

// InvariantError reports broken orbit bookkeeping, usually caused by a
// symmetry table that is not closed under composition. The engine panics
// with it internally and Facet returns it.
type InvariantError struct {
	Msg   string
	Stack string
}

func (e *InvariantError) Error() string {
	return "facet: invariant violated: " + e.Msg
}

// invariant panics with an *InvariantError prefixed by the caller's
// function name and line.
func invariant(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if pc, _, line, ok := runtime.Caller(1); ok {
		msg = fmt.Sprintf("%s line %d: %s", runtime.FuncForPC(pc).Name(), line, msg)
	}
	panic(&InvariantError{Msg: msg, Stack: string(debug.Stack())})
}

// recoverInvariant converts an *InvariantError panic into err. Other panics
// are propagated.
func recoverInvariant(err *error) {
	if a := recover(); a != nil {
		ie, ok := a.(*InvariantError)
		if !ok {
			panic(a)
		}
		*err = ie
	}
}
