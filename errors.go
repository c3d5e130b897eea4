package watermark

import "github.com/pkg/errors"

// Configuration errors. They are reported before any image is processed and
// are wrapped with the offending value, so match them with errors.Is.
var (
	ErrInputDir      = errors.New("input directory is missing or not a directory")
	ErrWatermarkFile = errors.New("watermark file is missing or not a regular file")
	ErrPlacement     = errors.New("unknown watermark placement")
	ErrScale         = errors.New("scale must be a positive number")
	ErrQuality       = errors.New("jpeg quality must be between 1 and 100")
	ErrOpacity       = errors.New("opacity must be between 0 and 1")
	ErrExtension     = errors.New("extension filter is empty")
	ErrOutputDir     = errors.New("output directory is empty")
)

// ErrWatermarkBox is returned when a source image is too small for the scaled
// watermark box to hold a single pixel.
var ErrWatermarkBox = errors.New("watermark box is empty")
