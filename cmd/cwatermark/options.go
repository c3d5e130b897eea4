package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	watermark "github.com/gcslaoli/corner-watermark-go"
	"github.com/gcslaoli/corner-watermark-go/internal/config"
)

// usageError marks command-line mistakes; main exits with status 2 for them.
type usageError string

func (e usageError) Error() string { return string(e) }

type cliFlags struct {
	dir, ext, out, watermark string
	scale                    float64
	br, bl, tr, tl           bool
	position                 string
	quality                  int
	opacity                  float64
	engine, filter           string
}

func newFlagSet(f *cliFlags, cfg *config.Config, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("cwatermark", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Add watermarks to given images.")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Usage: cwatermark [flags]")
		fs.PrintDefaults()
	}

	aliased := func(p *string, name, short, usage string) {
		fs.StringVar(p, name, "", usage)
		fs.StringVar(p, short, "", "Shorthand for -"+name+".")
	}
	aliased(&f.dir, "dir", "d", "Path to the folder of images to watermark.")
	aliased(&f.ext, "ext", "e", "The file extension of images to be watermarked. Case insensitive.")
	aliased(&f.out, "out", "o", "Path to the output folder. Will be created if it doesn't exist.")
	aliased(&f.watermark, "watermark", "w", "Path to the watermark file.")

	fs.Float64Var(&f.scale, "scale", watermark.DefaultScale, "Scaling factor of the watermark as a proportion of the original image.")
	fs.Float64Var(&f.scale, "s", watermark.DefaultScale, "Shorthand for -scale.")

	fs.BoolVar(&f.br, "br", false, "Places the watermark in the bottom right corner.")
	fs.BoolVar(&f.bl, "bl", false, "Places the watermark in the bottom left corner.")
	fs.BoolVar(&f.tr, "tr", false, "Places the watermark in the top right corner.")
	fs.BoolVar(&f.tl, "tl", false, "Places the watermark in the top left corner.")
	fs.StringVar(&f.position, "position", "", "Watermark corner: br|bl|tr|tl or bottom-right|bottom-left|top-right|top-left.")

	fs.IntVar(&f.quality, "quality", cfg.Quality, "JPEG quality of the written images (1-100).")
	fs.Float64Var(&f.opacity, "opacity", cfg.Opacity, "Watermark opacity multiplier (0-1].")
	fs.StringVar(&f.engine, "engine", cfg.Engine, "Resize engine: imaging|nfnt.")
	fs.StringVar(&f.filter, "filter", cfg.Filter, "Resampling filter: nearest|bilinear|bicubic|lanczos.")

	return fs
}

// parseOptions turns the command line into watermark.Options, prompting on in
// for anything that was not given. With no arguments at all it prints the
// usage first and also asks for the scale.
func parseOptions(args []string, cfg *config.Config, in io.Reader, out io.Writer) (watermark.Options, error) {
	var f cliFlags
	fs := newFlagSet(&f, cfg, out)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return watermark.Options{}, err
		}
		return watermark.Options{}, usageError(err.Error())
	}
	if fs.NArg() > 0 {
		return watermark.Options{}, usageError(fmt.Sprintf("unexpected arguments %q", fs.Args()))
	}

	placement, havePlacement, err := f.placement()
	if err != nil {
		return watermark.Options{}, err
	}

	resizer, err := watermark.NewResizer(f.engine, f.filter)
	if err != nil {
		return watermark.Options{}, usageError(err.Error())
	}

	interactive := len(args) == 0
	if interactive {
		fs.Usage()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Running in interactive mode. Note that it is possible to run this tool with arguments")
		fmt.Fprintln(out)
	}

	p := newPrompter(in, out)
	for _, q := range []struct {
		dst      *string
		question string
	}{
		{&f.dir, "Input dir? >> "},
		{&f.ext, "Image extension? >> "},
		{&f.out, "Output dir? >> "},
		{&f.watermark, "Watermark path? >> "},
	} {
		if *q.dst != "" {
			continue
		}
		if *q.dst, err = p.ask(q.question); err != nil {
			return watermark.Options{}, err
		}
	}

	if interactive {
		answer, err := p.ask("Scaling? [" + strconv.FormatFloat(watermark.DefaultScale, 'g', -1, 64) + "] >> ")
		if err != nil {
			return watermark.Options{}, err
		}
		if answer != "" {
			if f.scale, err = strconv.ParseFloat(answer, 64); err != nil {
				return watermark.Options{}, errors.Wrapf(watermark.ErrScale, "%q", answer)
			}
		}
	}

	opts := watermark.Options{
		InputDir:      f.dir,
		Extension:     f.ext,
		OutputDir:     f.out,
		WatermarkPath: f.watermark,
		Placement:     placement,
		Scale:         f.scale,
		Quality:       f.quality,
		Opacity:       f.opacity,
		Resizer:       resizer,
	}

	// Paths are checked before asking for the corner so a typo fails fast.
	if err := opts.Validate(); err != nil {
		return watermark.Options{}, err
	}

	if !havePlacement {
		if opts.Placement, err = p.askPlacement(); err != nil {
			return watermark.Options{}, err
		}
	}

	return opts, nil
}

// placement resolves the corner switches and -position. At most one may be
// given.
func (f *cliFlags) placement() (watermark.Placement, bool, error) {
	var chosen []watermark.Placement
	for _, c := range []struct {
		set bool
		p   watermark.Placement
	}{
		{f.br, watermark.BottomRight},
		{f.bl, watermark.BottomLeft},
		{f.tr, watermark.TopRight},
		{f.tl, watermark.TopLeft},
	} {
		if c.set {
			chosen = append(chosen, c.p)
		}
	}

	if f.position != "" {
		p, err := watermark.ParsePlacement(f.position)
		if err != nil {
			return 0, false, usageError(err.Error())
		}
		chosen = append(chosen, p)
	}

	switch len(chosen) {
	case 0:
		return watermark.BottomRight, false, nil
	case 1:
		return chosen[0], true, nil
	default:
		return 0, false, usageError("only one of -br, -bl, -tr, -tl, -position may be given")
	}
}
