package watermark

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultScale is the watermark size as a fraction of the photo's width
	// and height.
	DefaultScale = 0.16

	// PaddingProportion is the inset from the chosen edges, as a multiple of
	// the smaller side of the watermark box.
	PaddingProportion = 0.2
)

// Placement selects the corner the watermark is anchored to.
type Placement int

const (
	BottomRight Placement = iota
	BottomLeft
	TopRight
	TopLeft
)

var placementNames = [...]struct{ short, long string }{
	BottomRight: {"br", "bottom-right"},
	BottomLeft:  {"bl", "bottom-left"},
	TopRight:    {"tr", "top-right"},
	TopLeft:     {"tl", "top-left"},
}

// Placements lists every corner in declaration order.
func Placements() []Placement {
	return []Placement{BottomRight, BottomLeft, TopRight, TopLeft}
}

// ParsePlacement accepts the short codes (br, bl, tr, tl) and the long names
// (bottom-right, ...). Matching ignores case and surrounding spaces.
func ParsePlacement(s string) (Placement, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for p, n := range placementNames {
		if v == n.short || v == n.long {
			return Placement(p), nil
		}
	}
	return 0, errors.Wrapf(ErrPlacement, "%q", s)
}

func (p Placement) valid() bool {
	return p >= BottomRight && p <= TopLeft
}

// String returns the long name, e.g. "bottom-right".
func (p Placement) String() string {
	if !p.valid() {
		return "placement(" + strconv.Itoa(int(p)) + ")"
	}
	return placementNames[p].long
}

// Short returns the two-letter code, e.g. "br".
func (p Placement) Short() string {
	if !p.valid() {
		return "?"
	}
	return placementNames[p].short
}

// IsBottom reports whether the vertical padding is measured from the bottom
// edge.
func (p Placement) IsBottom() bool {
	return p == BottomRight || p == BottomLeft
}

// IsRight reports whether the horizontal padding is measured from the right
// edge.
func (p Placement) IsRight() bool {
	return p == BottomRight || p == TopRight
}

// TargetBox returns the bounding box the watermark is fitted into for a photo
// of the given size.
func TargetBox(width, height int, scale float64) (int, int) {
	return int(math.Floor(float64(width) * scale)), int(math.Floor(float64(height) * scale))
}

// MinSize is the smaller side of the target box. Offsets are derived from it
// rather than from the resized watermark, so a watermark whose aspect differs
// from the photo's is still inset by the same amount on both axes.
func MinSize(boxW, boxH int) int {
	if boxW < boxH {
		return boxW
	}
	return boxH
}

// Offset computes the top-left point of the watermark for a photo of the
// given size.
func Offset(width, height, minSize int, p Placement) image.Point {
	var pt image.Point
	pad := PaddingProportion * float64(minSize)
	far := (PaddingProportion + 1) * float64(minSize)

	if p.IsBottom() {
		pt.Y = int(math.Floor(float64(height) - far))
	} else {
		pt.Y = int(math.Floor(pad))
	}

	if p.IsRight() {
		pt.X = int(math.Floor(float64(width) - far))
	} else {
		pt.X = int(math.Floor(pad))
	}

	return pt
}
