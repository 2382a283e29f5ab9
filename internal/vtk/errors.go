package vtk

import "errors"

// Fatal decode errors. Decode wraps them with the offending line number.
var (
	ErrUnsupportedDataset          = errors.New("unsupported dataset")
	ErrNotASCII                    = errors.New("not an ASCII VTK file")
	ErrNumericBeforeDataset        = errors.New("numeric data before any section keyword")
	ErrMultipleColorAttributes     = errors.New("multiple COLOR_SCALARS blocks unsupported")
	ErrMalformedColorScalarsHeader = errors.New("malformed COLOR_SCALARS header")
	ErrMalformedNumber             = errors.New("malformed number")
	ErrTruncatedPointData          = errors.New("truncated point data")
	ErrTruncatedPolygonData        = errors.New("truncated polygon data")
	ErrTruncatedColorData          = errors.New("truncated color data")
	ErrColorCountMismatch          = errors.New("color count does not match point count")
	ErrUnreadableStream            = errors.New("unreadable stream")
)

// Errors shared by the decoder's final checks and the encoder's validation.
var (
	ErrDegeneratePolygon      = errors.New("polygon has fewer than 3 indices")
	ErrPolygonIndexOutOfRange = errors.New("polygon index out of range")
	ErrInvalidTitle           = errors.New("invalid title")
	ErrInvalidColorName       = errors.New("invalid color attribute name")
	ErrNonFiniteValue         = errors.New("value is NaN or infinite")
)
