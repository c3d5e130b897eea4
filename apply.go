package watermark

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Options configures a batch run.
type Options struct {
	InputDir      string
	Extension     string
	OutputDir     string
	WatermarkPath string
	Placement     Placement
	// Scale defaults to DefaultScale when zero.
	Scale float64
	// Quality is the JPEG quality, DefaultQuality when zero.
	Quality int
	// Opacity multiplies the watermark alpha. Zero means fully opaque (1).
	Opacity float64
	// Resizer defaults to DefaultResizer when nil.
	Resizer Resizer
	// Logger defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// Result summarises a finished run.
type Result struct {
	// Matched is the number of source files selected by the extension filter.
	Matched int
	// Outputs lists the written files in processing order.
	Outputs []string
}

func (o Options) withDefaults() Options {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}
	if o.Opacity == 0 {
		o.Opacity = 1
	}
	if o.Resizer == nil {
		o.Resizer = DefaultResizer()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Validate checks the configuration and the filesystem preconditions: the
// input directory must exist and the watermark must be a regular file. Zero
// values that have defaults are accepted.
func (o Options) Validate() error {
	o = o.withDefaults()

	fi, err := os.Stat(o.InputDir)
	if err != nil {
		return errors.Wrapf(ErrInputDir, "%s: %v", o.InputDir, err)
	}
	if !fi.IsDir() {
		return errors.Wrapf(ErrInputDir, "%s", o.InputDir)
	}

	fi, err = os.Stat(o.WatermarkPath)
	if err != nil {
		return errors.Wrapf(ErrWatermarkFile, "%s: %v", o.WatermarkPath, err)
	}
	if !fi.Mode().IsRegular() {
		return errors.Wrapf(ErrWatermarkFile, "%s", o.WatermarkPath)
	}

	if NormalizeExt(o.Extension) == "" {
		return ErrExtension
	}
	if o.OutputDir == "" {
		return ErrOutputDir
	}
	if !o.Placement.valid() {
		return errors.Wrapf(ErrPlacement, "%d", int(o.Placement))
	}
	if err := checkScale(o.Scale); err != nil {
		return err
	}
	if o.Quality < 1 || o.Quality > 100 {
		return errors.Wrapf(ErrQuality, "got %d", o.Quality)
	}
	return checkOpacity(o.Opacity)
}

// Apply stamps the watermark onto every matching file in InputDir and writes
// the results as JPEG into OutputDir, creating it when needed and overwriting
// files of the same name. The first failure aborts the run; Result reports
// what was written up to that point.
func Apply(ctx context.Context, opts Options) (Result, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	log := opts.Logger

	sources, err := ListSources(opts.InputDir, opts.Extension)
	if err != nil {
		return Result{}, err
	}

	mark, err := DecodeFile(opts.WatermarkPath)
	if err != nil {
		return Result{}, errors.Wrap(err, "load watermark")
	}

	comp, err := NewCompositor(mark,
		WithPlacement(opts.Placement),
		WithScale(opts.Scale),
		WithOpacity(opts.Opacity),
		WithResizer(opts.Resizer),
	)
	if err != nil {
		return Result{}, err
	}

	log.Info("watermarking",
		"input", opts.InputDir,
		"ext", NormalizeExt(opts.Extension),
		"matched", len(sources),
		"output", opts.OutputDir,
		"placement", opts.Placement.String(),
		"scale", opts.Scale,
	)

	res := Result{Matched: len(sources)}
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrap(err, "watermarking interrupted")
		}

		out, info, err := stampFile(comp, src, opts.OutputDir, opts.Quality)
		if err != nil {
			return res, err
		}
		res.Outputs = append(res.Outputs, out)

		log.Debug("layout",
			"src", filepath.Base(src),
			"box", info.Box,
			"min_size", info.MinSize,
			"resized", info.Resized,
		)
		log.Info("stamped",
			"progress", fmt.Sprintf("%d/%d", i+1, len(sources)),
			"src", filepath.Base(src),
			"out", out,
			"position", info.Position,
			"size", info.Size,
		)
	}

	return res, nil
}

func stampFile(comp *Compositor, src, outDir string, quality int) (string, Info, error) {
	img, err := DecodeFile(src)
	if err != nil {
		return "", Info{}, err
	}

	stamped, info, err := comp.Stamp(img)
	if err != nil {
		return "", Info{}, errors.Wrapf(err, "stamp %s", src)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", Info{}, errors.Wrap(err, "create output dir")
	}

	out := filepath.Join(outDir, OutputName(src))
	f, err := os.Create(out)
	if err != nil {
		return "", Info{}, errors.Wrap(err, "create output")
	}
	if err := EncodeJPEG(f, stamped, quality); err != nil {
		f.Close()
		return "", Info{}, errors.Wrapf(err, "encode %s", out)
	}
	if err := f.Close(); err != nil {
		return "", Info{}, errors.Wrapf(err, "close %s", out)
	}

	return out, info, nil
}
