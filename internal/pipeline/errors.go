package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImage is returned by operations that need a loaded image.
	ErrNoImage = errors.New("no image loaded")

	// ErrQualityRange is returned when a quality level is outside the range
	// the output format accepts.
	ErrQualityRange = errors.New("quality out of range")

	// ErrCompressionRange is returned when a compression level is outside 0-9.
	ErrCompressionRange = errors.New("compression out of range")
)

// Kind classifies a failed operation.
type Kind int

const (
	// KindLoad covers unreadable, malformed or unsupported input.
	KindLoad Kind = iota + 1

	// KindRange covers quality and compression levels out of bounds.
	KindRange

	// KindGeometry covers invalid resize targets and empty crop regions.
	KindGeometry

	// KindNotLoaded covers operations that need an image or watermark that
	// was never loaded.
	KindNotLoaded

	// KindEncode covers unsupported output formats and write failures.
	KindEncode
)

var kindNames = map[Kind]string{
	KindLoad:      "load",
	KindRange:     "range",
	KindGeometry:  "geometry",
	KindNotLoaded: "not loaded",
	KindEncode:    "encode",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText lets Kind appear by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is one entry of a pipeline's error log.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op is the operation that failed, e.g. "resize".
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain, or 0 if there is
// none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
