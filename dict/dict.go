// Package dict provides a keyed container of named tensors.
//
// A Dict maps field names to tensors. It is immutable by convention: Update
// returns a new Dict with named fields overwritten, and Clone returns an
// independent shallow copy. Tensors themselves are shared between copies,
// which is safe because tensor operations never mutate their operands.
package dict

import (
	"encoding/hex"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/zoobzio/morph/tensor"
)

// Dict is a keyed container of tensors. The zero value is an empty
// container; construct with New for a populated one.
type Dict struct {
	fields map[string]*tensor.Dense
}

// New returns a Dict holding the given fields. The map is copied, so later
// changes to it do not affect the Dict.
func New(fields map[string]*tensor.Dense) *Dict {
	d := &Dict{fields: make(map[string]*tensor.Dense, len(fields))}
	for k, v := range fields {
		d.fields[k] = v
	}
	return d
}

// Keys returns the field names in sorted order.
func (d *Dict) Keys() []string {
	keys := make([]string, 0, len(d.fields))
	for k := range d.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether the field exists.
func (d *Dict) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// Get returns the named tensor and whether it exists.
func (d *Dict) Get(key string) (*tensor.Dense, bool) {
	t, ok := d.fields[key]
	return t, ok
}

// Len returns the number of fields.
func (d *Dict) Len() int {
	return len(d.fields)
}

// Clone returns an independent shallow copy: a new field map sharing the
// same tensor values.
func (d *Dict) Clone() *Dict {
	return New(d.fields)
}

// Update returns a new Dict with the named fields overwritten. Fields not
// named in overrides are preserved; override keys not already present are
// added. The receiver is never modified.
func (d *Dict) Update(overrides map[string]*tensor.Dense) *Dict {
	out := d.Clone()
	for k, v := range overrides {
		out.fields[k] = v
	}
	return out
}

// EqualApprox reports whether d and other have identical key sets and
// fieldwise values within tol.
func (d *Dict) EqualApprox(other *Dict, tol float64) bool {
	if len(d.fields) != len(other.fields) {
		return false
	}
	for k, v := range d.fields {
		o, ok := other.fields[k]
		if !ok || !v.EqualApprox(o, tol) {
			return false
		}
	}
	return true
}

// Fingerprint returns a hex-encoded BLAKE2b-256 digest over the sorted
// fields. Dicts with equal keys and equal tensors have equal fingerprints.
func (d *Dict) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	for _, k := range d.Keys() {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(d.fields[k].Fingerprint()))
	}
	return hex.EncodeToString(h.Sum(nil))
}
