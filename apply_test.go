package watermark

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	in, out, mark string
}

// newFixture lays out an input folder with two PNG photos, a JPEG, a text
// file and a directory, plus a half-transparent watermark.
func newFixture(t *testing.T) fixture {
	t.Helper()

	root := t.TempDir()
	fx := fixture{
		in:   filepath.Join(root, "in"),
		out:  filepath.Join(root, "out", "nested"),
		mark: filepath.Join(root, "mark.png"),
	}

	writePNG(t, filepath.Join(fx.in, "a.png"), solidImage(800, 400, blue))
	writePNG(t, filepath.Join(fx.in, "B.PNG"), solidImage(120, 160, blue))
	writePNG(t, filepath.Join(fx.in, "skip.gif.jpg"), solidImage(50, 50, blue))
	require.NoError(t, os.WriteFile(filepath.Join(fx.in, "notes.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(fx.in, "dir.png"), 0o755))

	mark := solidImage(64, 32, red)
	for y := 0; y < 32; y++ {
		for x := 0; x < 16; x++ {
			mark.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, A: 0})
		}
	}
	writePNG(t, fx.mark, mark)

	return fx
}

func (fx fixture) options() Options {
	return Options{
		InputDir:      fx.in,
		Extension:     "png",
		OutputDir:     fx.out,
		WatermarkPath: fx.mark,
		Placement:     BottomRight,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestApplyWritesMatchingFiles(t *testing.T) {
	fx := newFixture(t)

	res, err := Apply(context.Background(), fx.options())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, []string{
		filepath.Join(fx.out, "B.jpg"),
		filepath.Join(fx.out, "a.jpg"),
	}, res.Outputs)

	entries, err := os.ReadDir(fx.out)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"B.jpg", "a.jpg"}, names, "only matching files are written")

	for name, size := range map[string]image.Point{"a.jpg": {800, 400}, "B.jpg": {120, 160}} {
		data, err := os.ReadFile(filepath.Join(fx.out, name))
		require.NoError(t, err)
		img, format, err := DecodeImageBytes(data)
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, size, img.Bounds().Size(), name)
	}
}

func TestApplyPlacesWatermark(t *testing.T) {
	fx := newFixture(t)

	_, err := Apply(context.Background(), fx.options())
	require.NoError(t, err)

	img, err := DecodeFile(filepath.Join(fx.out, "a.jpg"))
	require.NoError(t, err)

	// 800x400 at 0.16: box 128x64, the 64x32 watermark fits as is, min side
	// 64, so it sits at (723, 323). Its left quarter is transparent.
	r, _, b, _ := img.At(770, 340).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, b>>8, uint32(60))

	r, _, b, _ = img.At(728, 340).RGBA()
	assert.Less(t, r>>8, uint32(60), "transparent part keeps the photo")
	assert.Greater(t, b>>8, uint32(200))

	r, _, b, _ = img.At(20, 20).RGBA()
	assert.Less(t, r>>8, uint32(60))
	assert.Greater(t, b>>8, uint32(200))
}

func TestApplyIsIdempotent(t *testing.T) {
	fx := newFixture(t)

	_, err := Apply(context.Background(), fx.options())
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(fx.out, "a.jpg"))
	require.NoError(t, err)

	_, err = Apply(context.Background(), fx.options())
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(fx.out, "a.jpg"))
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "second run must produce identical bytes")
}

func TestApplyOverwritesExistingOutput(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, os.MkdirAll(fx.out, 0o755))
	stale := filepath.Join(fx.out, "a.jpg")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))
	keep := filepath.Join(fx.out, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("keep"), 0o644))

	_, err := Apply(context.Background(), fx.options())
	require.NoError(t, err)

	_, err = DecodeFile(stale)
	assert.NoError(t, err)
	data, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestApplyNoMatches(t *testing.T) {
	fx := newFixture(t)
	opts := fx.options()
	opts.Extension = ".webp"

	res, err := Apply(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, res.Matched)
	assert.Empty(t, res.Outputs)
	assert.NoDirExists(t, fx.out)
}

func TestApplyFailsBeforeProcessing(t *testing.T) {
	fx := newFixture(t)

	cases := []struct {
		name   string
		mutate func(*Options)
		want   error
	}{
		{"missing input dir", func(o *Options) { o.InputDir = filepath.Join(fx.in, "nope") }, ErrInputDir},
		{"input is a file", func(o *Options) { o.InputDir = fx.mark }, ErrInputDir},
		{"missing watermark", func(o *Options) { o.WatermarkPath = filepath.Join(fx.in, "nope.png") }, ErrWatermarkFile},
		{"watermark is a dir", func(o *Options) { o.WatermarkPath = fx.in }, ErrWatermarkFile},
		{"empty extension", func(o *Options) { o.Extension = "" }, ErrExtension},
		{"empty output", func(o *Options) { o.OutputDir = "" }, ErrOutputDir},
		{"negative scale", func(o *Options) { o.Scale = -1 }, ErrScale},
		{"bad quality", func(o *Options) { o.Quality = 101 }, ErrQuality},
		{"bad opacity", func(o *Options) { o.Opacity = 2 }, ErrOpacity},
		{"bad placement", func(o *Options) { o.Placement = Placement(4) }, ErrPlacement},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := fx.options()
			tc.mutate(&opts)

			res, err := Apply(context.Background(), opts)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, res.Outputs)
			assert.NoDirExists(t, fx.out)
		})
	}
}

func TestApplyAbortsOnDecodeError(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(fx.in, "c.png"), []byte("broken"), 0o644))

	res, err := Apply(context.Background(), fx.options())
	require.Error(t, err)
	assert.ErrorContains(t, err, "c.png")

	// B.PNG and a.png sort before c.png and were already written.
	assert.Equal(t, 3, res.Matched)
	assert.Len(t, res.Outputs, 2)
	assert.NoFileExists(t, filepath.Join(fx.out, "c.jpg"))
}

func TestApplyAbortsOnBadWatermark(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, os.WriteFile(fx.mark, []byte("broken"), 0o644))

	_, err := Apply(context.Background(), fx.options())
	assert.ErrorContains(t, err, "load watermark")
	assert.NoDirExists(t, fx.out)
}

func TestApplyStopsWhenCancelled(t *testing.T) {
	fx := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Apply(ctx, fx.options())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Outputs)
}

func TestApplyMatchesStamp(t *testing.T) {
	fx := newFixture(t)
	opts := fx.options()
	opts.Placement = TopLeft

	_, err := Apply(context.Background(), opts)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(fx.out, "B.jpg"))
	require.NoError(t, err)

	mark, err := DecodeFile(fx.mark)
	require.NoError(t, err)
	c, err := NewCompositor(mark, WithPlacement(TopLeft))
	require.NoError(t, err)
	src, err := os.ReadFile(filepath.Join(fx.in, "B.PNG"))
	require.NoError(t, err)
	want, _, err := StampBytes(src, c, DefaultQuality)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(want, got), "Apply and StampBytes must agree")
}
