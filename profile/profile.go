// Package profile loads declarative transform profiles from YAML and builds
// joint transforms from them.
//
// A profile names a bijector (plus optional parameters) per container key:
//
//	transforms:
//	  scale: {bijector: exp}
//	  weight: {bijector: affine, scale: 2.0, shift: 1.0}
//	cache: 1
//
// Loading, validation, and construction are separate steps: Load/Parse
// decode the document, Validate checks every referenced bijector is
// registered and the cache size is supported, Build constructs the
// morph.Joint.
package profile

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/zoobzio/morph"
)

// Spec declares the transform for a single key.
type Spec struct {
	Bijector string   `yaml:"bijector"`
	Scale    *float64 `yaml:"scale,omitempty"`
	Shift    *float64 `yaml:"shift,omitempty"`
}

// Profile is a declarative description of a joint transform.
type Profile struct {
	Transforms map[string]Spec `yaml:"transforms"`
	Cache      int             `yaml:"cache"`
}

// Load decodes a profile from r.
func Load(r io.Reader) (*Profile, error) {
	var p Profile
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding profile YAML: %w", err)
	}
	return &p, nil
}

// Parse decodes a profile from raw YAML bytes.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile YAML: %w", err)
	}
	return &p, nil
}

// LoadFile decodes a profile from the file at path.
func LoadFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening profile %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Save encodes the profile as YAML to w.
func Save(w io.Writer, p *Profile) error {
	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()
	if err := encoder.Encode(p); err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return nil
}

// Validate checks the profile without constructing anything: every
// referenced bijector must be registered and the cache size supported.
func (p *Profile) Validate() error {
	if p.Cache != 0 && p.Cache != 1 {
		return &morph.ConfigError{Err: morph.ErrInvalidCacheSize, Value: strconv.Itoa(p.Cache)}
	}
	for key, spec := range p.Transforms {
		if _, ok := lookup(spec.Bijector); !ok {
			return &morph.ConfigError{Err: morph.ErrUnknownBijector, Value: spec.Bijector, Key: key}
		}
	}
	return nil
}

// Build validates the profile, constructs each key's transform through the
// factory registry, and assembles the morph.Joint.
func (p *Profile) Build() (*morph.Joint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	registry := make(map[string]morph.Transform, len(p.Transforms))
	for key, spec := range p.Transforms {
		factory, _ := lookup(spec.Bijector)
		t, err := factory(spec)
		if err != nil {
			return nil, fmt.Errorf("building transform for key %q: %w", key, err)
		}
		registry[key] = t
	}

	return morph.NewJoint(registry, p.Cache)
}
