package watermark

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Info captures the watermark box, size and placement for a given photo.
type Info struct {
	// Box is the bounding box the watermark was fitted into.
	Box image.Point
	// Size is the watermark size after fitting.
	Size image.Point
	// MinSize is the smaller side of Box.
	MinSize int
	// Position is the top-left corner of the watermark, relative to the
	// photo's origin.
	Position image.Point
	// Resized is false when the watermark already fitted the box.
	Resized bool
}

// Rect returns the area covered by the watermark, before clipping to the
// photo.
func (i Info) Rect() image.Rectangle {
	return image.Rectangle{Min: i.Position, Max: i.Position.Add(i.Size)}
}

// Compositor holds a decoded watermark and stamps it onto photos. The
// watermark is never modified; every photo gets its own resized copy.
type Compositor struct {
	mark      image.Image
	placement Placement
	scale     float64
	opacity   float64
	resizer   Resizer
}

// CompositorOption configures a Compositor.
type CompositorOption func(*Compositor)

// WithPlacement sets the corner. Defaults to BottomRight.
func WithPlacement(p Placement) CompositorOption {
	return func(c *Compositor) { c.placement = p }
}

// WithScale sets the watermark size relative to the photo. Defaults to
// DefaultScale.
func WithScale(scale float64) CompositorOption {
	return func(c *Compositor) { c.scale = scale }
}

// WithOpacity multiplies the watermark's own alpha. Defaults to 1.
func WithOpacity(opacity float64) CompositorOption {
	return func(c *Compositor) { c.opacity = opacity }
}

// WithResizer sets the resize engine. Defaults to DefaultResizer.
func WithResizer(r Resizer) CompositorOption {
	return func(c *Compositor) {
		if r != nil {
			c.resizer = r
		}
	}
}

// NewCompositor builds a Compositor for the given watermark.
func NewCompositor(mark image.Image, opts ...CompositorOption) (*Compositor, error) {
	if mark == nil {
		return nil, errors.New("nil watermark provided")
	}
	b := mark.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.Errorf("invalid watermark dimensions %dx%d", b.Dx(), b.Dy())
	}

	c := &Compositor{
		mark:      mark,
		placement: BottomRight,
		scale:     DefaultScale,
		opacity:   1,
		resizer:   DefaultResizer(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !c.placement.valid() {
		return nil, errors.Wrapf(ErrPlacement, "%d", int(c.placement))
	}
	if err := checkScale(c.scale); err != nil {
		return nil, err
	}
	if err := checkOpacity(c.opacity); err != nil {
		return nil, err
	}

	return c, nil
}

// Layout computes where the watermark goes on a width x height photo without
// touching any pixels.
func (c *Compositor) Layout(width, height int) (Info, error) {
	if width <= 0 || height <= 0 {
		return Info{}, errors.Errorf("invalid image dimensions %dx%d", width, height)
	}

	boxW, boxH := TargetBox(width, height, c.scale)
	minSize := MinSize(boxW, boxH)

	mb := c.mark.Bounds()
	w, h, resized, err := ThumbnailSize(mb.Dx(), mb.Dy(), boxW, boxH)
	if err != nil {
		return Info{}, errors.Wrapf(err, "image %dx%d at scale %g", width, height, c.scale)
	}

	return Info{
		Box:      image.Pt(boxW, boxH),
		Size:     image.Pt(w, h),
		MinSize:  minSize,
		Position: Offset(width, height, minSize, c.placement),
		Resized:  resized,
	}, nil
}

// Stamp composites the watermark onto src and returns the result as a new
// image. The watermark's alpha channel is the blend mask; parts falling
// outside src are clipped.
func (c *Compositor) Stamp(src image.Image) (*image.NRGBA, Info, error) {
	if src == nil {
		return nil, Info{}, errors.New("nil image provided")
	}

	bounds := src.Bounds()
	info, err := c.Layout(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, Info{}, err
	}

	mark := c.mark
	if info.Resized {
		mark = c.resizer.Resize(c.mark, info.Size.X, info.Size.Y)
	}

	return imaging.Overlay(src, mark, bounds.Min.Add(info.Position), c.opacity), info, nil
}

func checkScale(scale float64) error {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return errors.Wrapf(ErrScale, "got %g", scale)
	}
	return nil
}

func checkOpacity(opacity float64) error {
	if opacity < 0 || opacity > 1 || math.IsNaN(opacity) {
		return errors.Wrapf(ErrOpacity, "got %g", opacity)
	}
	return nil
}
