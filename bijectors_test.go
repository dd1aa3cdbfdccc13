package morph

import (
	"errors"
	"math"
	"testing"

	"github.com/zoobzio/morph/tensor"
)

func TestBijectors_RoundTrip(t *testing.T) {
	affine, err := Affine(2.5, -1)
	if err != nil {
		t.Fatalf("Affine() error = %v", err)
	}

	tests := []struct {
		name      string
		transform Transform
		inputs    []float64
	}{
		{name: "identity", transform: Identity(), inputs: []float64{-2, 0, 3.5}},
		{name: "exp", transform: Exp(), inputs: []float64{-2, 0, 3.5}},
		{name: "affine", transform: affine, inputs: []float64{-2, 0, 3.5}},
		{name: "sigmoid", transform: Sigmoid(), inputs: []float64{-4, 0, 4}},
		{name: "softplus", transform: Softplus(), inputs: []float64{-4, 0.5, 6}},
		{name: "tanh", transform: Tanh(), inputs: []float64{-1.5, 0, 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := tensor.FromSlice(tt.inputs, len(tt.inputs))
			if err != nil {
				t.Fatalf("FromSlice() error = %v", err)
			}

			y, err := tt.transform.Forward(x)
			if err != nil {
				t.Fatalf("Forward() error = %v", err)
			}

			back, err := tt.transform.Inverse(y)
			if err != nil {
				t.Fatalf("Inverse() error = %v", err)
			}

			if !back.EqualApprox(x, 1e-9) {
				t.Errorf("Inverse(Forward(x)) = %v, want %v", back.Data(), x.Data())
			}

			if !tt.transform.Bijective() {
				t.Error("Bijective() = false, want true")
			}

			if !tt.transform.Codomain().Check(y) {
				t.Errorf("Forward() output %v violates codomain %v", y.Data(), tt.transform.Codomain())
			}
		})
	}
}

// Jacobians are checked against a central finite difference of the forward
// map: log|dy/dx| at each element.
func TestBijectors_JacobianMatchesDerivative(t *testing.T) {
	affine, _ := Affine(-3, 0.5)

	tests := []struct {
		name      string
		transform Transform
		inputs    []float64
	}{
		{name: "exp", transform: Exp(), inputs: []float64{-1, 0, 2}},
		{name: "affine", transform: affine, inputs: []float64{-1, 0, 2}},
		{name: "sigmoid", transform: Sigmoid(), inputs: []float64{-2, 0, 2}},
		{name: "softplus", transform: Softplus(), inputs: []float64{-2, 0, 2}},
		{name: "tanh", transform: Tanh(), inputs: []float64{-1, 0, 1}},
	}

	const h = 1e-6

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, _ := tensor.FromSlice(tt.inputs, len(tt.inputs))
			y, err := tt.transform.Forward(x)
			if err != nil {
				t.Fatalf("Forward() error = %v", err)
			}

			ladj, err := tt.transform.LogAbsDetJacobian(x, y)
			if err != nil {
				t.Fatalf("LogAbsDetJacobian() error = %v", err)
			}

			for i, v := range tt.inputs {
				lo, _ := tt.transform.Forward(tensor.Scalar(v - h))
				hi, _ := tt.transform.Forward(tensor.Scalar(v + h))
				want := math.Log(math.Abs((hi.At(0) - lo.At(0)) / (2 * h)))

				if math.Abs(ladj.At(i)-want) > 1e-5 {
					t.Errorf("LogAbsDetJacobian()[%d] = %v, want %v", i, ladj.At(i), want)
				}
			}
		})
	}
}

func TestIdentity_ZeroJacobian(t *testing.T) {
	x, _ := tensor.FromSlice([]float64{1, 2, 3}, 3)

	ladj, err := Identity().LogAbsDetJacobian(x, x)
	if err != nil {
		t.Fatalf("LogAbsDetJacobian() error = %v", err)
	}

	if !ladj.EqualApprox(tensor.ZerosLike(x), 0) {
		t.Errorf("LogAbsDetJacobian() = %v, want zeros", ladj.Data())
	}
}

func TestAffine_ZeroScale(t *testing.T) {
	_, err := Affine(0, 1)
	if err == nil {
		t.Fatal("Affine() should reject a zero scale")
	}
	if !errors.Is(err, ErrInvalidScale) {
		t.Errorf("Affine() error should be ErrInvalidScale, got %v", err)
	}
}

func TestBuiltin(t *testing.T) {
	for _, name := range []string{
		BijectorIdentity,
		BijectorExp,
		BijectorSigmoid,
		BijectorSoftplus,
		BijectorTanh,
	} {
		if _, ok := Builtin(name); !ok {
			t.Errorf("Builtin(%q) not found", name)
		}
	}

	if _, ok := Builtin(BijectorAffine); ok {
		t.Error("Builtin(affine) should not exist; affine requires parameters")
	}
	if _, ok := Builtin("logit"); ok {
		t.Error("Builtin(logit) should not exist")
	}
}

func TestConstraints(t *testing.T) {
	tests := []struct {
		name       string
		constraint Constraint
		values     []float64
		want       bool
	}{
		{name: "real finite", constraint: Real, values: []float64{-1, 0, 1e300}, want: true},
		{name: "real inf", constraint: Real, values: []float64{math.Inf(1)}, want: false},
		{name: "real nan", constraint: Real, values: []float64{math.NaN()}, want: false},
		{name: "positive", constraint: Positive, values: []float64{0.1, 2}, want: true},
		{name: "positive zero", constraint: Positive, values: []float64{0}, want: false},
		{name: "unit interval", constraint: UnitInterval, values: []float64{0.2, 0.9}, want: true},
		{name: "unit interval boundary", constraint: UnitInterval, values: []float64{1}, want: false},
		{name: "interval", constraint: Interval(-1, 1), values: []float64{-0.5, 0.5}, want: true},
		{name: "interval outside", constraint: Interval(-1, 1), values: []float64{1.5}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := tensor.FromSlice(tt.values, len(tt.values))
			if err != nil {
				t.Fatalf("FromSlice() error = %v", err)
			}
			if got := tt.constraint.Check(x); got != tt.want {
				t.Errorf("Check(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}
