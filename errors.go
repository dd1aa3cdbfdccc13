package morph

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNilTransform indicates a registry entry does not carry a usable
	// transform.
	ErrNilTransform = errors.New("nil transform")

	// ErrInvalidCacheSize indicates an unsupported cache size; only 0 and 1
	// are supported.
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrUnknownBijector indicates a bijector name with no registered
	// implementation.
	ErrUnknownBijector = errors.New("unknown bijector")

	// ErrInvalidScale indicates an affine transform with a zero scale,
	// which is not invertible.
	ErrInvalidScale = errors.New("invalid scale")

	// ErrMissingKeys indicates the registry's keys are not covered by a
	// container's keys.
	ErrMissingKeys = errors.New("missing keys")

	// ErrKeySetMismatch indicates two containers that must share a key set
	// do not.
	ErrKeySetMismatch = errors.New("key set mismatch")

	// ErrForward indicates a per-key forward application failed.
	ErrForward = errors.New("forward failed")

	// ErrInverse indicates a per-key inverse application failed.
	ErrInverse = errors.New("inverse failed")

	// ErrJacobian indicates a per-key log-Jacobian evaluation failed.
	ErrJacobian = errors.New("jacobian failed")
)

// ContractError represents a registry entry that violates the Transform
// contract at construction time.
type ContractError struct {
	Err  error    // Underlying sentinel error (ErrNilTransform)
	Keys []string // Offending registry keys, sorted
}

func (e *ContractError) Error() string {
	if len(e.Keys) > 0 {
		return fmt.Sprintf("%s for keys [%s]", e.Err.Error(), strings.Join(e.Keys, " "))
	}
	return e.Err.Error()
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// ConfigError represents an unsupported configuration value.
// It wraps a sentinel error with the offending name and key.
type ConfigError struct {
	Err   error  // Underlying sentinel error (ErrInvalidCacheSize, etc.)
	Value string // Offending value (cache size, bijector name, scale)
	Key   string // Registry key that triggered the error, if any
}

func (e *ConfigError) Error() string {
	if e.Value != "" && e.Key != "" {
		return fmt.Sprintf("%s %q (key %s)", e.Err.Error(), e.Value, e.Key)
	}
	if e.Value != "" {
		return fmt.Sprintf("%s %q", e.Err.Error(), e.Value)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s (key %s)", e.Err.Error(), e.Key)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// KeyError represents a key-set precondition violation at call time.
// The two conditions are distinct: ErrMissingKeys means the registry is not
// covered by the container's keys, ErrKeySetMismatch means the two containers
// passed to a Jacobian evaluation disagree.
type KeyError struct {
	Err  error    // Underlying sentinel error (ErrMissingKeys, ErrKeySetMismatch)
	Keys []string // Missing or mismatched keys, sorted
}

func (e *KeyError) Error() string {
	if len(e.Keys) > 0 {
		return fmt.Sprintf("%s: [%s]", e.Err.Error(), strings.Join(e.Keys, " "))
	}
	return e.Err.Error()
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// TransformError represents a failure inside a per-key transform during a
// composite operation. It carries which key and operation failed.
type TransformError struct {
	Err   error  // Underlying sentinel error (ErrForward, ErrInverse, ErrJacobian)
	Key   string // Registry key that failed
	Op    string // Operation that failed (forward, inverse, jacobian)
	Cause error  // Original error from the underlying transform
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s key %s: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("%s key %s", e.Op, e.Key)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// newContractError creates a ContractError for registry validation failures.
func newContractError(sentinel error, keys []string) error {
	return &ContractError{Err: sentinel, Keys: keys}
}

// newKeyError creates a KeyError for key-set precondition violations.
func newKeyError(sentinel error, keys []string) error {
	return &KeyError{Err: sentinel, Keys: keys}
}

// newTransformError creates a TransformError for per-key operation failures.
func newTransformError(sentinel error, op, key string, cause error) error {
	return &TransformError{Err: sentinel, Key: key, Op: op, Cause: cause}
}
