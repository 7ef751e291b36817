package singlediode

import "fmt"

// ShapeError reports parameter vectors whose lengths cannot be broadcast to a
// common batch size. Every vector must have length 1 or the shared length N.
type ShapeError struct {
	Name string // input that disagrees
	Len  int    // its length
	Want int    // the batch length established by the other inputs
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("singlediode: input %q has length %d, want 1 or %d", e.Name, e.Len, e.Want)
}

// DomainError reports a value outside the physical domain of its parameter,
// such as a negative resistance or a non-finite photocurrent.
type DomainError struct {
	Name  string
	Index int
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("singlediode: input %q must be non-negative and finite, got %g at index %d", e.Name, e.Value, e.Index)
}
