package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	watermark "github.com/gcslaoli/corner-watermark-go"
	"github.com/gcslaoli/corner-watermark-go/internal/config"
)

// go run . -d photos -e .jpg -o out -w logo.png -br
// go run . --dir photos --ext PNG --out out --watermark logo.png --tl --scale 0.2
// go run . -d photos -e jpg -o out -w logo.png -position top-right -quality 90
// go run .   (interactive)

func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := parseOptions(os.Args[1:], cfg, os.Stdin, os.Stdout)
	var usage usageError
	switch {
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.As(err, &usage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	case err != nil:
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}

	res, err := watermark.Apply(ctx, opts)
	if err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Watermarked %d of %d images into %s\n", len(res.Outputs), res.Matched, opts.OutputDir)
}
