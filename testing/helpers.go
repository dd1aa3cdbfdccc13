// Package testing provides test utilities for morph.
package testing

import (
	"errors"

	"github.com/zoobzio/morph"
	"github.com/zoobzio/morph/dict"
	"github.com/zoobzio/morph/tensor"
)

// Tolerance is the default comparison tolerance for round-trip assertions.
const Tolerance = 1e-9

// ScalarDict returns a Dict with one scalar tensor per entry.
func ScalarDict(values map[string]float64) *dict.Dict {
	fields := make(map[string]*tensor.Dense, len(values))
	for k, v := range values {
		fields[k] = tensor.Scalar(v)
	}
	return dict.New(fields)
}

// NonBijective returns a transform that behaves like the identity but
// reports Bijective() == false. Useful for exercising bijectivity
// reductions.
func NonBijective() morph.Transform {
	return nonBijective{}
}

type nonBijective struct{}

func (nonBijective) Forward(x *tensor.Dense) (*tensor.Dense, error) { return x, nil }
func (nonBijective) Inverse(y *tensor.Dense) (*tensor.Dense, error) { return y, nil }
func (nonBijective) LogAbsDetJacobian(x, _ *tensor.Dense) (*tensor.Dense, error) {
	return tensor.ZerosLike(x), nil
}
func (nonBijective) Domain() morph.Constraint   { return morph.Real }
func (nonBijective) Codomain() morph.Constraint { return morph.Real }
func (nonBijective) Bijective() bool            { return false }

// Failing returns a transform whose every operation fails with err.
func Failing(err error) morph.Transform {
	if err == nil {
		err = errors.New("transform failed")
	}
	return failing{err: err}
}

type failing struct {
	err error
}

func (f failing) Forward(*tensor.Dense) (*tensor.Dense, error)                { return nil, f.err }
func (f failing) Inverse(*tensor.Dense) (*tensor.Dense, error)                { return nil, f.err }
func (f failing) LogAbsDetJacobian(_, _ *tensor.Dense) (*tensor.Dense, error) { return nil, f.err }
func (f failing) Domain() morph.Constraint                                    { return morph.Real }
func (f failing) Codomain() morph.Constraint                                  { return morph.Real }
func (f failing) Bijective() bool                                             { return true }
