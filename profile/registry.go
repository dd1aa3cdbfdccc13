package profile

import (
	"fmt"
	"sync"

	"github.com/zoobzio/morph"
)

// Factory constructs a transform from a profile spec.
type Factory func(Spec) (morph.Transform, error)

var (
	factories   map[string]Factory
	factoriesMu sync.RWMutex
)

func init() {
	factories = builtinFactories()
}

// Register makes a factory available to profiles under the given name.
// Registering a name twice is an error; use Reset to restore the builtin
// set in tests.
func Register(name string, factory Factory) error {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, ok := factories[name]; ok {
		return fmt.Errorf("bijector %q already registered", name)
	}
	factories[name] = factory
	return nil
}

// Reset restores the factory registry to the builtin set.
// This is primarily useful for test isolation.
func Reset() {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories = builtinFactories()
}

// lookup returns the named factory if registered.
func lookup(name string) (Factory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// builtinFactories returns the default factory registry: the parameterless
// morph builtins plus affine.
func builtinFactories() map[string]Factory {
	reg := make(map[string]Factory)
	for _, name := range []string{
		morph.BijectorIdentity,
		morph.BijectorExp,
		morph.BijectorSigmoid,
		morph.BijectorSoftplus,
		morph.BijectorTanh,
	} {
		name := name
		reg[name] = func(Spec) (morph.Transform, error) {
			t, _ := morph.Builtin(name)
			return t, nil
		}
	}
	reg[morph.BijectorAffine] = affineFactory
	return reg
}

// affineFactory builds an affine transform from spec parameters. Scale is
// required and must be nonzero; shift defaults to zero.
func affineFactory(spec Spec) (morph.Transform, error) {
	if spec.Scale == nil {
		return nil, &morph.ConfigError{Err: morph.ErrInvalidScale, Value: "missing"}
	}
	shift := 0.0
	if spec.Shift != nil {
		shift = *spec.Shift
	}
	return morph.Affine(*spec.Scale, shift)
}
