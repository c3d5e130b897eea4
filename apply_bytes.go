package watermark

import (
	"bytes"
	"image"

	"github.com/pkg/errors"
)

// DecodeImageBytes decodes raw image bytes, returning the image and the
// detected format string.
func DecodeImageBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errors.New("empty image data")
	}

	img, format, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(err, "decode image")
	}
	return img, format, nil
}

// StampBytes stamps the compositor's watermark onto raw image bytes and
// returns the result encoded as JPEG at the given quality, together with the
// placement details.
func StampBytes(data []byte, c *Compositor, quality int) ([]byte, Info, error) {
	if c == nil {
		return nil, Info{}, errors.New("nil compositor")
	}
	if quality < 1 || quality > 100 {
		return nil, Info{}, errors.Wrapf(ErrQuality, "got %d", quality)
	}

	img, _, err := DecodeImageBytes(data)
	if err != nil {
		return nil, Info{}, err
	}

	stamped, info, err := c.Stamp(img)
	if err != nil {
		return nil, Info{}, err
	}

	var buf bytes.Buffer
	if err := EncodeJPEG(&buf, stamped, quality); err != nil {
		return nil, Info{}, errors.Wrap(err, "encode jpeg")
	}
	return buf.Bytes(), info, nil
}
