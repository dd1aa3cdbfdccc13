package morph

import (
	"fmt"
	"math"

	"github.com/zoobzio/morph/tensor"
)

// Transform is a unary bijective mapping on tensors.
//
// Implementations must satisfy Inverse(Forward(x)) == x up to numerical
// tolerance whenever Bijective reports true. LogAbsDetJacobian evaluates the
// log-absolute-determinant of the transform's Jacobian at a forward/inverse
// pair (x, y) where y = Forward(x); implementations may use either argument.
type Transform interface {
	// Forward applies the transform.
	Forward(x *tensor.Dense) (*tensor.Dense, error)

	// Inverse applies the inverse transform.
	Inverse(y *tensor.Dense) (*tensor.Dense, error)

	// LogAbsDetJacobian returns the elementwise log|det J| evaluated at the
	// pair (x, y).
	LogAbsDetJacobian(x, y *tensor.Dense) (*tensor.Dense, error)

	// Domain returns the constraint the transform's inputs must satisfy.
	Domain() Constraint

	// Codomain returns the constraint the transform's outputs satisfy.
	Codomain() Constraint

	// Bijective reports whether the transform is a true two-sided bijection.
	Bijective() bool
}

// Constraint describes the support a transform declares for its inputs or
// outputs, e.g. "positive reals".
type Constraint interface {
	// Check reports whether every element of t satisfies the constraint.
	Check(t *tensor.Dense) bool

	// String returns the constraint's name.
	String() string
}

// constraint implements Constraint with an elementwise predicate.
type constraint struct {
	name  string
	check func(float64) bool
}

func (c constraint) Check(t *tensor.Dense) bool {
	for _, v := range t.Data() {
		if !c.check(v) {
			return false
		}
	}
	return true
}

func (c constraint) String() string {
	return c.name
}

// Builtin constraints.
var (
	// Real admits any finite value.
	Real Constraint = constraint{"real", func(v float64) bool {
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	}}

	// Positive admits strictly positive values.
	Positive Constraint = constraint{"positive", func(v float64) bool {
		return v > 0
	}}

	// UnitInterval admits values in (0, 1).
	UnitInterval Constraint = constraint{"unit_interval", func(v float64) bool {
		return v > 0 && v < 1
	}}
)

// Interval returns a constraint admitting values in the open interval
// (lo, hi).
func Interval(lo, hi float64) Constraint {
	return constraint{
		name: fmt.Sprintf("interval(%g, %g)", lo, hi),
		check: func(v float64) bool {
			return v > lo && v < hi
		},
	}
}
