package morph

import (
	"math"
	"strconv"

	"github.com/zoobzio/morph/tensor"
)

// Builtin bijector names usable in struct tags and profiles.
const (
	BijectorIdentity = "identity"
	BijectorExp      = "exp"
	BijectorSigmoid  = "sigmoid"
	BijectorSoftplus = "softplus"
	BijectorTanh     = "tanh"
	BijectorAffine   = "affine"
)

// identityTransform is the no-op bijection.
type identityTransform struct{}

// Identity returns the identity transform. Forward and Inverse return their
// input; log|det J| is zero everywhere.
func Identity() Transform {
	return identityTransform{}
}

func (identityTransform) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	return x, nil
}

func (identityTransform) Inverse(y *tensor.Dense) (*tensor.Dense, error) {
	return y, nil
}

func (identityTransform) LogAbsDetJacobian(x, _ *tensor.Dense) (*tensor.Dense, error) {
	return tensor.ZerosLike(x), nil
}

func (identityTransform) Domain() Constraint   { return Real }
func (identityTransform) Codomain() Constraint { return Real }
func (identityTransform) Bijective() bool      { return true }

// expTransform maps reals to positive reals via the exponential.
type expTransform struct{}

// Exp returns the exponential transform: forward e^x, inverse log y,
// log|det J|(x, y) = x.
func Exp() Transform {
	return expTransform{}
}

func (expTransform) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	return x.Map(math.Exp), nil
}

func (expTransform) Inverse(y *tensor.Dense) (*tensor.Dense, error) {
	return y.Map(math.Log), nil
}

func (expTransform) LogAbsDetJacobian(x, _ *tensor.Dense) (*tensor.Dense, error) {
	return x.Clone(), nil
}

func (expTransform) Domain() Constraint   { return Real }
func (expTransform) Codomain() Constraint { return Positive }
func (expTransform) Bijective() bool      { return true }

// affineTransform is y = scale*x + shift with nonzero scale.
type affineTransform struct {
	scale, shift float64
}

// Affine returns the affine transform y = scale*x + shift. A zero scale is
// not invertible and fails with a ConfigError wrapping ErrInvalidScale.
func Affine(scale, shift float64) (Transform, error) {
	if scale == 0 {
		return nil, &ConfigError{Err: ErrInvalidScale, Value: strconv.FormatFloat(scale, 'g', -1, 64)}
	}
	return affineTransform{scale: scale, shift: shift}, nil
}

func (t affineTransform) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	return x.Map(func(v float64) float64 { return t.scale*v + t.shift }), nil
}

func (t affineTransform) Inverse(y *tensor.Dense) (*tensor.Dense, error) {
	return y.Map(func(v float64) float64 { return (v - t.shift) / t.scale }), nil
}

func (t affineTransform) LogAbsDetJacobian(x, _ *tensor.Dense) (*tensor.Dense, error) {
	return tensor.FullLike(x, math.Log(math.Abs(t.scale))), nil
}

func (t affineTransform) Domain() Constraint   { return Real }
func (t affineTransform) Codomain() Constraint { return Real }
func (t affineTransform) Bijective() bool      { return true }

// sigmoidTransform maps reals to the unit interval.
type sigmoidTransform struct{}

// Sigmoid returns the logistic transform: forward 1/(1+e^-x), inverse
// logit y.
func Sigmoid() Transform {
	return sigmoidTransform{}
}

func (sigmoidTransform) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	return x.Map(func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }), nil
}

func (sigmoidTransform) Inverse(y *tensor.Dense) (*tensor.Dense, error) {
	return y.Map(func(v float64) float64 { return math.Log(v) - math.Log1p(-v) }), nil
}

func (sigmoidTransform) LogAbsDetJacobian(x, _ *tensor.Dense) (*tensor.Dense, error) {
	// d/dx sigmoid(x) = sigmoid(x) * sigmoid(-x)
	return x.Map(func(v float64) float64 { return -softplus(-v) - softplus(v) }), nil
}

func (sigmoidTransform) Domain() Constraint   { return Real }
func (sigmoidTransform) Codomain() Constraint { return UnitInterval }
func (sigmoidTransform) Bijective() bool      { return true }

// softplusTransform maps reals to positive reals via log(1+e^x).
type softplusTransform struct{}

// Softplus returns the softplus transform: forward log(1+e^x), inverse
// log(e^y - 1).
func Softplus() Transform {
	return softplusTransform{}
}

func (softplusTransform) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	return x.Map(softplus), nil
}

func (softplusTransform) Inverse(y *tensor.Dense) (*tensor.Dense, error) {
	return y.Map(func(v float64) float64 { return v + math.Log1p(-math.Exp(-v)) }), nil
}

func (softplusTransform) LogAbsDetJacobian(x, _ *tensor.Dense) (*tensor.Dense, error) {
	// d/dx softplus(x) = sigmoid(x)
	return x.Map(func(v float64) float64 { return -softplus(-v) }), nil
}

func (softplusTransform) Domain() Constraint   { return Real }
func (softplusTransform) Codomain() Constraint { return Positive }
func (softplusTransform) Bijective() bool      { return true }

// tanhTransform maps reals to (-1, 1).
type tanhTransform struct{}

// Tanh returns the hyperbolic tangent transform.
func Tanh() Transform {
	return tanhTransform{}
}

func (tanhTransform) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	return x.Map(math.Tanh), nil
}

func (tanhTransform) Inverse(y *tensor.Dense) (*tensor.Dense, error) {
	return y.Map(math.Atanh), nil
}

func (tanhTransform) LogAbsDetJacobian(x, _ *tensor.Dense) (*tensor.Dense, error) {
	// log(1 - tanh^2(x)) = 2*(log 2 - x - softplus(-2x))
	return x.Map(func(v float64) float64 { return 2 * (math.Ln2 - v - softplus(-2*v)) }), nil
}

func (tanhTransform) Domain() Constraint   { return Real }
func (tanhTransform) Codomain() Constraint { return Interval(-1, 1) }
func (tanhTransform) Bijective() bool      { return true }

// builtinBijectors maps parameterless builtin names to their constructors.
// Affine needs parameters and is constructed through Affine or a profile.
var builtinBijectors = map[string]func() Transform{
	BijectorIdentity: Identity,
	BijectorExp:      Exp,
	BijectorSigmoid:  Sigmoid,
	BijectorSoftplus: Softplus,
	BijectorTanh:     Tanh,
}

// Builtin returns the named parameterless builtin bijector, if it exists.
func Builtin(name string) (Transform, bool) {
	ctor, ok := builtinBijectors[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// softplus computes log(1+e^v) stably for large |v|.
func softplus(v float64) float64 {
	return math.Max(v, 0) + math.Log1p(math.Exp(-math.Abs(v)))
}
