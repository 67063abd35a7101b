package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
// A rank-0 shape is a scalar with one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that the shape is well formed. Zero-size dimensions are
// legal (an empty tensor contributes nothing to a concatenation); only
// negative dimensions are rejected.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] is the element distance between successive indices along
// dimension i: the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// NormalizeAxis resolves a possibly negative axis against the shape's rank.
// Returns an error when the axis falls outside [-rank, rank).
func (s Shape) NormalizeAxis(axis int) (int, error) {
	rank := len(s)
	norm := axis
	if norm < 0 {
		norm += rank
	}
	if norm < 0 || norm >= rank {
		return 0, fmt.Errorf("axis %d out of range for rank-%d tensor", axis, rank)
	}
	return norm, nil
}
