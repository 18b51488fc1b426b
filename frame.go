package frameview

import (
	"fmt"
	"iter"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// Size is a width and height in pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// Empty reports whether either dimension is zero.
func (s Size) Empty() bool {
	return s.Width == 0 || s.Height == 0
}

// Aspect returns height divided by width. It is recomputed on every call
// and is undefined for an empty size.
func (s Size) Aspect() float32 {
	return float32(s.Height) / float32(s.Width)
}

// Bytes returns the length of a tightly packed RGBA8 buffer of this size.
func (s Size) Bytes() uint64 {
	return uint64(s.Width) * uint64(s.Height) * BytesPerPixel
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Point is a frame placement in pixels.
type Point struct {
	X uint32
	Y uint32
}

// Frame is one image pulled from a Source.
//
// Pixels is tightly packed RGBA8: rows of 4*Width bytes with no padding.
// Position is the placement of the frame and must be the origin.
// The context only reads Pixels and never retains it past DrawFrame.
type Frame interface {
	Size() Size
	Position() Point
	Pixels() []byte
}

// Source produces frames. DrawFrame calls Next at most once per draw;
// ok is false when no frame is available right now.
type Source interface {
	Next() (f Frame, ok bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (Frame, bool)

// Next calls f.
func (f SourceFunc) Next() (Frame, bool) { return f() }

// FromSeq adapts a push iterator to a Source. The returned stop function
// releases the iterator and must be called when the source is no longer
// used. Once the sequence ends every pull reports no frame.
func FromSeq(seq iter.Seq[Frame]) (Source, func()) {
	next, stop := iter.Pull(seq)
	return SourceFunc(next), stop
}

// PixelFrame is a Frame backed by a byte slice.
type PixelFrame struct {
	size   Size
	pixels []byte
}

// NewFrame returns a frame of the given size over pixels. The slice is not
// copied.
func NewFrame(size Size, pixels []byte) *PixelFrame {
	return &PixelFrame{size: size, pixels: pixels}
}

// Size returns the frame size.
func (f *PixelFrame) Size() Size { return f.size }

// Position returns the origin.
func (f *PixelFrame) Position() Point { return Point{} }

// Pixels returns the RGBA8 pixel data.
func (f *PixelFrame) Pixels() []byte { return f.pixels }

// ValidateFrame checks that f has a non-empty size, origin placement and a
// pixel buffer of exactly 4*width*height bytes.
func ValidateFrame(f Frame) error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidFrame)
	}
	size := f.Size()
	if size.Empty() {
		return fmt.Errorf("%w: empty size %s", ErrInvalidFrame, size)
	}
	if pos := f.Position(); pos != (Point{}) {
		return fmt.Errorf("%w: placement (%d,%d) is not the origin", ErrInvalidFrame, pos.X, pos.Y)
	}
	if got, want := uint64(len(f.Pixels())), size.Bytes(); got != want {
		return fmt.Errorf("%w: %s frame has %d pixel bytes, want %d", ErrInvalidFrame, size, got, want)
	}
	return nil
}
