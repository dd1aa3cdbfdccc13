// Package tensor provides a dense float64 tensor used as the field value
// type for keyed transforms.
//
// A Dense is a flat []float64 with a shape. Operations never mutate the
// receiver: Map, Zip, and friends allocate a fresh tensor, so callers can
// share tensors freely across containers.
package tensor

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"golang.org/x/crypto/blake2b"
	"gonum.org/v1/gonum/floats"
)

// ErrShapeMismatch indicates two tensors with incompatible shapes were
// combined. Use errors.Is() to check for it.
var ErrShapeMismatch = errors.New("shape mismatch")

// Dense is a dense float64 tensor. The zero value is unusable; construct
// with New, FromSlice, Scalar, or Full.
type Dense struct {
	shape []int
	data  []float64
}

// New returns a zero-filled tensor with the given shape.
// No dimensions yields a scalar (a single element).
func New(shape ...int) *Dense {
	return &Dense{
		shape: append([]int{}, shape...),
		data:  make([]float64, sizeOf(shape)),
	}
}

// FromSlice returns a tensor wrapping a copy of data with the given shape.
// The data length must match the shape's element count.
func FromSlice(data []float64, shape ...int) (*Dense, error) {
	if len(data) != sizeOf(shape) {
		return nil, fmt.Errorf("%w: %d elements for shape %v", ErrShapeMismatch, len(data), shape)
	}
	return &Dense{
		shape: append([]int{}, shape...),
		data:  append([]float64{}, data...),
	}, nil
}

// Scalar returns a zero-dimensional tensor holding a single value.
func Scalar(v float64) *Dense {
	return &Dense{shape: []int{}, data: []float64{v}}
}

// Full returns a tensor of the given shape with every element set to v.
func Full(v float64, shape ...int) *Dense {
	t := New(shape...)
	for i := range t.data {
		t.data[i] = v
	}
	return t
}

// FullLike returns a tensor shaped like t with every element set to v.
func FullLike(t *Dense, v float64) *Dense {
	return Full(v, t.shape...)
}

// OnesLike returns a ones-filled tensor shaped like t.
func OnesLike(t *Dense) *Dense {
	return FullLike(t, 1)
}

// ZerosLike returns a zero-filled tensor shaped like t.
func ZerosLike(t *Dense) *Dense {
	return FullLike(t, 0)
}

// Shape returns a copy of the tensor's shape.
func (t *Dense) Shape() []int {
	return append([]int{}, t.shape...)
}

// Size returns the number of elements.
func (t *Dense) Size() int {
	return len(t.data)
}

// Data returns the underlying element slice. It is a view, not a copy;
// callers must not modify it.
func (t *Dense) Data() []float64 {
	return t.data
}

// At returns the element at flat index i.
func (t *Dense) At(i int) float64 {
	return t.data[i]
}

// Clone returns an independent copy of the tensor.
func (t *Dense) Clone() *Dense {
	return &Dense{
		shape: append([]int{}, t.shape...),
		data:  append([]float64{}, t.data...),
	}
}

// Map applies f to every element and returns the result as a new tensor.
func (t *Dense) Map(f func(float64) float64) *Dense {
	out := &Dense{
		shape: append([]int{}, t.shape...),
		data:  make([]float64, len(t.data)),
	}
	for i, v := range t.data {
		out.data[i] = f(v)
	}
	return out
}

// Zip combines t and other elementwise with f into a new tensor.
// The shapes must match exactly.
func (t *Dense) Zip(other *Dense, f func(a, b float64) float64) (*Dense, error) {
	if !shapeEqual(t.shape, other.shape) {
		return nil, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, t.shape, other.shape)
	}
	out := &Dense{
		shape: append([]int{}, t.shape...),
		data:  make([]float64, len(t.data)),
	}
	for i, v := range t.data {
		out.data[i] = f(v, other.data[i])
	}
	return out, nil
}

// Sum returns the sum of all elements. Useful for reducing a per-field
// log-Jacobian tensor to a scalar correction term.
func (t *Dense) Sum() float64 {
	return floats.Sum(t.data)
}

// EqualApprox reports whether t and other have the same shape and
// elementwise values within tol.
func (t *Dense) EqualApprox(other *Dense, tol float64) bool {
	if !shapeEqual(t.shape, other.shape) {
		return false
	}
	if len(t.data) == 0 {
		return true
	}
	return floats.EqualApprox(t.data, other.data, tol)
}

// Fingerprint returns a hex-encoded BLAKE2b-256 digest of the tensor's shape
// and contents. Equal tensors have equal fingerprints.
func (t *Dense) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(t.shape)))
	h.Write(buf[:])
	for _, d := range t.shape {
		binary.LittleEndian.PutUint64(buf[:], uint64(d))
		h.Write(buf[:])
	}
	for _, v := range t.data {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (t *Dense) String() string {
	return fmt.Sprintf("Dense%v%v", t.shape, t.data)
}

func sizeOf(shape []int) int {
	size := 1
	for _, d := range shape {
		size *= d
	}
	return size
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
