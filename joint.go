package morph

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/zoobzio/morph/dict"
	"github.com/zoobzio/morph/tensor"
)

// Joint applies a different transform to each registered key of a dict.Dict,
// composing the per-key transforms into one structured bijection.
//
// The registry is fixed at construction and owned exclusively by the Joint.
// Containers passed to operations are never mutated: every result starts
// from a copy with the registered fields overwritten. Keys present in a
// container but absent from the registry pass through unchanged.
//
// A Joint holds no mutable state of its own. With cacheSize 1 each per-key
// transform carries a one-slot memo, which makes concurrent invocation
// unsafe; with cacheSize 0 operations are pure.
type Joint struct {
	transformations map[string]Transform
	cacheSize       int
	keys            []string // sorted registry keys
}

// NewJoint constructs a Joint from a registry mapping field names to
// transforms.
//
// Every registry value must be a usable Transform; nil entries fail with a
// ContractError wrapping ErrNilTransform naming the offending keys. With
// cacheSize 1 each transform is replaced by its cache-enabled variant before
// being stored; with cacheSize 0 transforms are stored unmodified. Other
// cache sizes fail with a ConfigError wrapping ErrInvalidCacheSize.
func NewJoint(transformations map[string]Transform, cacheSize int) (*Joint, error) {
	var bad []string
	for key, t := range transformations {
		if t == nil {
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, newContractError(ErrNilTransform, bad)
	}

	if cacheSize != 0 && cacheSize != 1 {
		return nil, &ConfigError{Err: ErrInvalidCacheSize, Value: strconv.Itoa(cacheSize)}
	}

	registry := make(map[string]Transform, len(transformations))
	keys := make([]string, 0, len(transformations))
	for key, t := range transformations {
		if cacheSize == 1 {
			t, _ = WithCache(t, cacheSize)
		}
		registry[key] = t
		keys = append(keys, key)
	}
	sort.Strings(keys)

	j := &Joint{
		transformations: registry,
		cacheSize:       cacheSize,
		keys:            keys,
	}

	emitJointCreated(context.Background(), len(keys), cacheSize)
	return j, nil
}

// Keys returns the registry's keys in sorted order.
func (j *Joint) Keys() []string {
	return append([]string{}, j.keys...)
}

// CacheSize returns the caching policy the Joint was constructed with.
func (j *Joint) CacheSize() int {
	return j.cacheSize
}

// Forward applies each registered transform to the matching field of x and
// returns the result as a new container with the same key set.
//
// The registry's keys must all be present in x; otherwise Forward fails with
// a KeyError wrapping ErrMissingKeys naming the missing keys.
func (j *Joint) Forward(x *dict.Dict) (*dict.Dict, error) {
	start := time.Now()

	var retErr error
	defer func() {
		emitForwardComplete(context.Background(), len(j.keys), time.Since(start), retErr)
	}()

	if missing := j.uncovered(x); len(missing) > 0 {
		retErr = newKeyError(ErrMissingKeys, missing)
		return nil, retErr
	}

	overrides := make(map[string]*tensor.Dense, len(j.transformations))
	for key, t := range j.transformations {
		in, _ := x.Get(key)
		out, err := t.Forward(in)
		if err != nil {
			retErr = newTransformError(ErrForward, "forward", key, err)
			return nil, retErr
		}
		overrides[key] = out
	}

	return x.Update(overrides), nil
}

// Inverse applies each registered transform's inverse to the matching field
// of y and returns the result as a new container with the same key set.
//
// The registry's keys must all be present in y; otherwise Inverse fails with
// a KeyError wrapping ErrMissingKeys naming the missing keys. When every
// registered transform is bijective, Inverse(Forward(x)) recovers x up to
// the numerical tolerance of the elementary transforms.
func (j *Joint) Inverse(y *dict.Dict) (*dict.Dict, error) {
	start := time.Now()

	var retErr error
	defer func() {
		emitInverseComplete(context.Background(), len(j.keys), time.Since(start), retErr)
	}()

	if missing := j.uncovered(y); len(missing) > 0 {
		retErr = newKeyError(ErrMissingKeys, missing)
		return nil, retErr
	}

	overrides := make(map[string]*tensor.Dense, len(j.transformations))
	for key, t := range j.transformations {
		in, _ := y.Get(key)
		out, err := t.Inverse(in)
		if err != nil {
			retErr = newTransformError(ErrInverse, "inverse", key, err)
			return nil, retErr
		}
		overrides[key] = out
	}

	return y.Update(overrides), nil
}

// LogAbsDetJacobian returns a container of per-field log-absolute-Jacobian-
// determinant terms for the pair (x, y), where y is the forward image of x.
//
// x and y must have identical key sets, else a KeyError wrapping
// ErrKeySetMismatch naming the differing keys; the registry's keys must be
// covered by that shared key set, else a KeyError wrapping ErrMissingKeys.
// The two violations are independently detectable with errors.Is.
//
// Fields not in the registry contribute a ones-filled tensor of the same
// shape. Summing or reducing the per-field terms to a scalar correction is
// the caller's responsibility.
func (j *Joint) LogAbsDetJacobian(x, y *dict.Dict) (*dict.Dict, error) {
	start := time.Now()

	var retErr error
	defer func() {
		emitJacobianComplete(context.Background(), len(j.keys), time.Since(start), retErr)
	}()

	if diff := keySetDiff(x, y); len(diff) > 0 {
		retErr = newKeyError(ErrKeySetMismatch, diff)
		return nil, retErr
	}
	if missing := j.uncovered(x); len(missing) > 0 {
		retErr = newKeyError(ErrMissingKeys, missing)
		return nil, retErr
	}

	overrides := make(map[string]*tensor.Dense, x.Len())
	for _, key := range x.Keys() {
		xv, _ := x.Get(key)
		t, ok := j.transformations[key]
		if !ok {
			overrides[key] = tensor.OnesLike(xv)
			continue
		}
		yv, _ := y.Get(key)
		out, err := t.LogAbsDetJacobian(xv, yv)
		if err != nil {
			retErr = newTransformError(ErrJacobian, "jacobian", key, err)
			return nil, retErr
		}
		overrides[key] = out
	}

	return x.Update(overrides), nil
}

// Bijective reports whether every registered transform is bijective.
func (j *Joint) Bijective() bool {
	for _, t := range j.transformations {
		if !t.Bijective() {
			return false
		}
	}
	return true
}

// Domain returns each registered key's declared input constraint. Keys not
// in the registry have no entry.
func (j *Joint) Domain() map[string]Constraint {
	out := make(map[string]Constraint, len(j.transformations))
	for key, t := range j.transformations {
		out[key] = t.Domain()
	}
	return out
}

// Codomain returns each registered key's declared output constraint. Keys
// not in the registry have no entry.
func (j *Joint) Codomain() map[string]Constraint {
	out := make(map[string]Constraint, len(j.transformations))
	for key, t := range j.transformations {
		out[key] = t.Codomain()
	}
	return out
}

// uncovered returns the sorted registry keys absent from d.
func (j *Joint) uncovered(d *dict.Dict) []string {
	var missing []string
	for _, key := range j.keys {
		if !d.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// keySetDiff returns the sorted symmetric difference of two containers' key
// sets.
func keySetDiff(a, b *dict.Dict) []string {
	var diff []string
	for _, key := range a.Keys() {
		if !b.Has(key) {
			diff = append(diff, key)
		}
	}
	for _, key := range b.Keys() {
		if !a.Has(key) {
			diff = append(diff, key)
		}
	}
	sort.Strings(diff)
	return diff
}
