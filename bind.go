package morph

import (
	"github.com/zoobzio/sentinel"
)

func init() {
	// Register tags with sentinel
	sentinel.Tag("bijector")
	sentinel.Tag("dict")
}

// Bind derives a transform registry from T's struct tags.
//
// Fields carrying a `bijector:"name"` tag contribute an entry mapping the
// field's name to the named parameterless builtin bijector. A `dict:"key"`
// tag overrides the container key the field binds to. Fields without a
// bijector tag are skipped, so the struct can double as a schema for keys
// that pass through untransformed.
//
//	type Params struct {
//	    Scale  float64 `bijector:"exp"`
//	    Weight float64 `bijector:"sigmoid" dict:"w"`
//	    Loc    float64
//	}
//
// Unknown bijector names fail with a ConfigError wrapping ErrUnknownBijector.
// Parameterized bijectors (affine) cannot be expressed as a bare tag; use the
// profile package for those.
func Bind[T any]() (map[string]Transform, error) {
	spec := sentinel.Scan[T]()

	registry := make(map[string]Transform)
	for _, field := range spec.Fields {
		name, ok := field.Tags["bijector"]
		if !ok {
			continue
		}

		key := field.Name
		if alias, ok := field.Tags["dict"]; ok && alias != "" {
			key = alias
		}

		t, ok := Builtin(name)
		if !ok {
			return nil, &ConfigError{Err: ErrUnknownBijector, Value: name, Key: key}
		}
		registry[key] = t
	}

	return registry, nil
}
