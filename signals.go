package morph

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for composite transform events.
var (
	SignalJointCreated     = capitan.NewSignal("morph.joint.created", "Joint transform constructed")
	SignalForwardComplete  = capitan.NewSignal("morph.forward.complete", "Forward application finished")
	SignalInverseComplete  = capitan.NewSignal("morph.inverse.complete", "Inverse application finished")
	SignalJacobianComplete = capitan.NewSignal("morph.jacobian.complete", "Log-Jacobian evaluation finished")
)

// Keys for typed event data.
var (
	KeyKeyCount  = capitan.NewIntKey("key_count")
	KeyCacheSize = capitan.NewIntKey("cache_size")
	KeyDuration  = capitan.NewDurationKey("duration")
	KeyErr     = capitan.NewErrorKey("error")
)

// emitJointCreated emits an event when a joint transform is constructed.
func emitJointCreated(ctx context.Context, keyCount, cacheSize int) {
	capitan.Emit(ctx, SignalJointCreated,
		KeyKeyCount.Field(keyCount),
		KeyCacheSize.Field(cacheSize),
	)
}

// emitForwardComplete emits an event when a forward application finishes.
func emitForwardComplete(ctx context.Context, keyCount int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyKeyCount.Field(keyCount),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyErr.Field(err))
		capitan.Error(ctx, SignalForwardComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalForwardComplete, fields...)
	}
}

// emitInverseComplete emits an event when an inverse application finishes.
func emitInverseComplete(ctx context.Context, keyCount int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyKeyCount.Field(keyCount),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyErr.Field(err))
		capitan.Error(ctx, SignalInverseComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalInverseComplete, fields...)
	}
}

// emitJacobianComplete emits an event when a log-Jacobian evaluation finishes.
func emitJacobianComplete(ctx context.Context, keyCount int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyKeyCount.Field(keyCount),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyErr.Field(err))
		capitan.Error(ctx, SignalJacobianComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalJacobianComplete, fields...)
	}
}
