package watermark

import (
	"math"

	"github.com/pkg/errors"
)

// ThumbnailSize fits a srcW x srcH image into a boxW x boxH bounding box,
// keeping its aspect ratio and never enlarging it. The returned flag is false
// when the image already fits and should be used as is.
//
// The constrained side takes the box dimension; the other side is rounded to
// whichever neighbouring integer keeps the aspect closest to the source, and
// is never smaller than one pixel.
func ThumbnailSize(srcW, srcH, boxW, boxH int) (int, int, bool, error) {
	if boxW <= 0 || boxH <= 0 {
		return 0, 0, false, errors.Wrapf(ErrWatermarkBox, "box %dx%d", boxW, boxH)
	}
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, false, errors.Errorf("invalid watermark dimensions %dx%d", srcW, srcH)
	}
	if boxW >= srcW && boxH >= srcH {
		return srcW, srcH, false, nil
	}

	aspect := float64(srcW) / float64(srcH)
	w, h := boxW, boxH

	if float64(w)/float64(h) >= aspect {
		w = roundAspect(float64(h)*aspect, func(n int) float64 {
			return math.Abs(aspect - float64(n)/float64(h))
		})
	} else {
		h = roundAspect(float64(w)/aspect, func(n int) float64 {
			if n == 0 {
				return 0
			}
			return math.Abs(aspect - float64(w)/float64(n))
		})
	}

	return w, h, w != srcW || h != srcH, nil
}

// roundAspect picks floor(v) or ceil(v), whichever has the smaller distance,
// preferring floor on ties, with a lower bound of 1.
func roundAspect(v float64, distance func(int) float64) int {
	lo, hi := int(math.Floor(v)), int(math.Ceil(v))
	n := lo
	if distance(hi) < distance(lo) {
		n = hi
	}
	if n < 1 {
		n = 1
	}
	return n
}
