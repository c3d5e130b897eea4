package watermark

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Resizer scales an image to exactly width x height. Implementations must
// return a new image and leave img untouched.
type Resizer interface {
	Resize(img image.Image, width, height int) image.Image
}

// Resize engine names accepted by NewResizer.
const (
	EngineImaging = "imaging"
	EngineNfnt    = "nfnt"
)

// Resampling filter names accepted by NewResizer.
const (
	FilterNearest  = "nearest"
	FilterBilinear = "bilinear"
	FilterBicubic  = "bicubic"
	FilterLanczos  = "lanczos"
)

// ImagingResizer resizes with github.com/disintegration/imaging.
type ImagingResizer struct {
	Filter imaging.ResampleFilter
}

// Resize implements Resizer.
func (r ImagingResizer) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, r.Filter)
}

// NfntResizer resizes with github.com/nfnt/resize.
type NfntResizer struct {
	Interp resize.InterpolationFunction
}

// Resize implements Resizer.
func (r NfntResizer) Resize(img image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), img, r.Interp)
}

// DefaultResizer is bicubic resampling on the imaging engine.
func DefaultResizer() Resizer {
	return ImagingResizer{Filter: imaging.CatmullRom}
}

// NewResizer returns the resizer for an engine and filter name. Empty names
// select the defaults (imaging, bicubic).
func NewResizer(engine, filter string) (Resizer, error) {
	engine = strings.ToLower(strings.TrimSpace(engine))
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		filter = FilterBicubic
	}

	switch engine {
	case "", EngineImaging:
		f, ok := map[string]imaging.ResampleFilter{
			FilterNearest:  imaging.NearestNeighbor,
			FilterBilinear: imaging.Linear,
			FilterBicubic:  imaging.CatmullRom,
			FilterLanczos:  imaging.Lanczos,
		}[filter]
		if !ok {
			return nil, errors.Errorf("unknown resize filter %q", filter)
		}
		return ImagingResizer{Filter: f}, nil
	case EngineNfnt:
		f, ok := map[string]resize.InterpolationFunction{
			FilterNearest:  resize.NearestNeighbor,
			FilterBilinear: resize.Bilinear,
			FilterBicubic:  resize.Bicubic,
			FilterLanczos:  resize.Lanczos3,
		}[filter]
		if !ok {
			return nil, errors.Errorf("unknown resize filter %q", filter)
		}
		return NfntResizer{Interp: f}, nil
	default:
		return nil, errors.Errorf("unknown resize engine %q", engine)
	}
}
