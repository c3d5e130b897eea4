// Package watermark stamps a watermark image onto batches of photos.
//
// The watermark is scaled relative to each photo, placed in one of four
// corners with a padding proportional to its size, alpha-composited over the
// photo and written out as JPEG. Resizing, compositing and encoding are
// delegated to github.com/disintegration/imaging (or github.com/nfnt/resize
// for the alternate resize engine); the package itself only computes sizes and
// offsets and walks the input directory.
package watermark
