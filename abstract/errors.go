package abstract

import (
	"errors"
	"fmt"
)

var (
	// ErrNotDyadic is returned by Builder.Build when some pair of elements two
	// ranks apart is not joined by exactly two elements.
	ErrNotDyadic = errors.New("abstract: not dyadic")
	// ErrMalformed is returned for structures that are not polytopes at all:
	// missing nullitope or body, out of range or repeated subelements.
	ErrMalformed = errors.New("abstract: malformed rank structure")
)

// DyadicError reports the first dyadic violation found.
type DyadicError struct {
	Rank  int // rank of the upper element
	Index int // index of the upper element
	Sub   int // index of the lower element, two ranks below
	Count int // number of elements between them
}

func (e *DyadicError) Error() string {
	return fmt.Sprintf("abstract: element %d of rank %d and element %d of rank %d are joined by %d elements, want 2",
		e.Index, e.Rank, e.Sub, e.Rank-2, e.Count)
}

func (e *DyadicError) Unwrap() error { return ErrNotDyadic }
