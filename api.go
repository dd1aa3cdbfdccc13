// Package morph provides composite bijective transforms over keyed
// containers of tensors.
//
// A Joint owns a registry mapping field names to elementary bijective
// transforms and applies each one independently to the matching field of a
// dict.Dict, behaving as a whole like a single invertible transform. This is
// the reparameterization primitive used by change-of-variables computations
// such as normalizing flows and constrained variational inference.
//
// # Basic Usage
//
//	joint, _ := morph.NewJoint(map[string]morph.Transform{
//	    "scale": morph.Exp(),
//	}, 0)
//
//	x := dict.New(map[string]*tensor.Dense{
//	    "scale": tensor.Scalar(0),
//	    "loc":   tensor.Scalar(5),
//	})
//
//	y, _ := joint.Forward(x)                  // scale -> 1, loc unchanged
//	back, _ := joint.Inverse(y)               // recovers x
//	ladj, _ := joint.LogAbsDetJacobian(x, y)  // per-field log|det J|
//
// The caller's container is never mutated: every operation starts from a
// copy and selectively overwrites registered fields. Keys present in the
// container but absent from the registry pass through unchanged.
//
// # Transform Capability
//
// Elementary transforms implement the Transform interface: forward and
// inverse application, per-field log-absolute-Jacobian-determinant, declared
// domain and codomain constraints, and a bijective flag. Builtin bijectors
// cover the common reparameterizations:
//
//   - Identity() - no-op
//   - Exp() - reals to positive reals
//   - Affine(scale, shift) - nonzero scale required
//   - Sigmoid() - reals to the unit interval
//   - Softplus() - reals to positive reals
//   - Tanh() - reals to (-1, 1)
//
// # Caching
//
// NewJoint's cacheSize selects the memoization policy delegated to each
// per-key transform: 0 disables caching, 1 remembers only the most recent
// forward/inverse pair, keyed by input identity. Other sizes are rejected.
// The one-slot memo is not synchronized; see WithCache.
//
// # Registry Derivation
//
// A registry can be declared instead of assembled by hand:
//
//   - Bind[T]() derives one from struct tags: `bijector:"exp"`
//   - the profile package loads one from YAML
//
// # Errors
//
// All failures are synchronous and fatal to the call; there is no partial
// or best-effort result. Errors wrap sentinels (ErrMissingKeys,
// ErrKeySetMismatch, ErrInvalidCacheSize, ...) checkable with errors.Is,
// and typed wrappers (KeyError, ConfigError, ContractError, TransformError)
// extractable with errors.As carry the offending keys and values.
package morph
