package frameview

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Errors returned by Context operations.
var (
	// ErrSurfaceLost matches draw errors caused by an outdated or lost
	// presentation surface. The host should call Configure with the current
	// size and redraw.
	ErrSurfaceLost = errors.New("frameview: surface lost")

	// ErrExhausted matches draw errors caused by the backend running out of
	// memory. The host should stop its render loop.
	ErrExhausted = errors.New("frameview: graphics memory exhausted")

	// ErrDeviceLost matches draw errors caused by a lost GPU device.
	ErrDeviceLost = errors.New("frameview: device lost")

	// ErrTransient matches any other backend failure for a single frame.
	ErrTransient = errors.New("frameview: transient draw failure")

	// ErrContract matches draw errors caused by a frame that breaks the
	// frame contract.
	ErrContract = errors.New("frameview: frame contract violation")

	// ErrFrameSizeMismatch is returned when a frame's size differs from the
	// texture allocated for the first frame.
	ErrFrameSizeMismatch = errors.New("frameview: frame size differs from texture size")

	// ErrInvalidFrame is returned for frames with an empty size, a placement
	// other than the origin, or a pixel buffer of the wrong length.
	ErrInvalidFrame = errors.New("frameview: invalid frame")

	// ErrFrameTooLarge is returned for frames wider or taller than the
	// device's maximum 2D texture dimension.
	ErrFrameTooLarge = errors.New("frameview: frame exceeds texture size limit")

	// ErrNilSource is returned when DrawFrame is called with a nil source.
	ErrNilSource = errors.New("frameview: nil source")

	// ErrDestroyed is returned by operations on a destroyed context.
	ErrDestroyed = errors.New("frameview: context destroyed")

	// ErrNoAdapter is returned when no adapter can present to the surface.
	ErrNoAdapter = errors.New("frameview: no GPU adapter available")

	// ErrInvalidTarget is returned when a target lacks a device, queue or surface.
	ErrInvalidTarget = errors.New("frameview: invalid render target")

	// ErrNoSurfaceFormat is returned when the surface reports no formats.
	ErrNoSurfaceFormat = errors.New("frameview: surface supports no formats")
)

// Kind classifies a draw failure.
type Kind uint8

const (
	// KindTransient is a single-frame backend failure; the frame is dropped.
	KindTransient Kind = iota
	// KindSurfaceLost is a recoverable surface failure.
	KindSurfaceLost
	// KindExhausted is a fatal out-of-memory failure.
	KindExhausted
	// KindDeviceLost is a fatal device failure.
	KindDeviceLost
	// KindContract is a rejected frame.
	KindContract
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindSurfaceLost:
		return "surface lost"
	case KindExhausted:
		return "exhausted"
	case KindDeviceLost:
		return "device lost"
	case KindContract:
		return "contract"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindSurfaceLost:
		return ErrSurfaceLost
	case KindExhausted:
		return ErrExhausted
	case KindDeviceLost:
		return ErrDeviceLost
	case KindContract:
		return ErrContract
	default:
		return ErrTransient
	}
}

// DrawError is the error returned by DrawFrame.
type DrawError struct {
	// Kind classifies the failure.
	Kind Kind
	// Op names the step of the draw protocol that failed.
	Op string
	// Err is the underlying error.
	Err error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("frameview: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *DrawError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind, so that
// errors.Is(err, ErrSurfaceLost) holds for surface failures.
func (e *DrawError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// halKind maps a HAL error onto a draw failure kind.
func halKind(err error) Kind {
	switch {
	case errors.Is(err, hal.ErrSurfaceOutdated), errors.Is(err, hal.ErrSurfaceLost):
		return KindSurfaceLost
	case errors.Is(err, hal.ErrDeviceOutOfMemory):
		return KindExhausted
	case errors.Is(err, hal.ErrDeviceLost):
		return KindDeviceLost
	default:
		return KindTransient
	}
}

func drawError(op string, err error) *DrawError {
	return &DrawError{Kind: halKind(err), Op: op, Err: err}
}

func contractError(op string, err error) *DrawError {
	return &DrawError{Kind: KindContract, Op: op, Err: err}
}

// Outcome is the action a host loop should take after DrawFrame.
type Outcome uint8

const (
	// OutcomeOK means the frame was drawn or there was nothing to draw.
	OutcomeOK Outcome = iota
	// OutcomeReconfigure means the surface must be reconfigured with the
	// current size before the next redraw.
	OutcomeReconfigure
	// OutcomeSkip means the frame was dropped; log and continue.
	OutcomeSkip
	// OutcomeFatal means the render loop must stop.
	OutcomeFatal
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeReconfigure:
		return "reconfigure"
	case OutcomeSkip:
		return "skip"
	case OutcomeFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Outcome(%d)", o)
	}
}

// Classify maps an error returned by DrawFrame onto the host action.
// Errors that are not a *DrawError are treated as fatal when they report a
// destroyed context and skipped otherwise.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	var de *DrawError
	if errors.As(err, &de) {
		switch de.Kind {
		case KindSurfaceLost:
			return OutcomeReconfigure
		case KindExhausted, KindDeviceLost:
			return OutcomeFatal
		default:
			return OutcomeSkip
		}
	}
	if errors.Is(err, ErrDestroyed) {
		return OutcomeFatal
	}
	return OutcomeSkip
}
