// Package shots turns screenshot files into compact JPEG data URLs that can
// be embedded in a trade record.
package shots

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"
	"net/http"
	"os"
	"strings"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth = 1400
	DefaultQuality  = 0.74
	DefaultMaxCount = 2

	dataURLPrefix = "data:image/jpeg;base64,"
)

var (
	ErrNotImage = errors.New("not an image")
	ErrDecode   = errors.New("decode image")
)

// Encoder downscales to at most MaxWidth (keeping aspect ratio) and
// re-encodes as JPEG at Quality (0..1).
type Encoder struct {
	MaxWidth int
	Quality  float64
	MaxCount int
}

func NewEncoder() Encoder {
	return Encoder{MaxWidth: DefaultMaxWidth, Quality: DefaultQuality, MaxCount: DefaultMaxCount}
}

// Limit is the number of shots one trade may carry. A zero MaxCount means
// DefaultMaxCount.
func (e Encoder) Limit() int {
	if e.MaxCount <= 0 {
		return DefaultMaxCount
	}
	return e.MaxCount
}

// Encode reads one image and returns its data URL.
func (e Encoder) Encode(ctx context.Context, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return e.EncodeBytes(ctx, b)
}

// EncodeBytes is Encode for an in-memory image.
func (e Encoder) EncodeBytes(ctx context.Context, b []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !IsImage(b) {
		return "", ErrNotImage
	}

	src, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dst := e.scale(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: e.jpegQuality()}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeFiles encodes the first MaxCount image files among paths, in order.
// Files that are not images are skipped. Any read or decode failure aborts
// the whole batch so the caller never builds a trade from partial shots.
func (e Encoder) EncodeFiles(ctx context.Context, paths []string) ([]string, error) {
	max := e.Limit()

	out := make([]string, 0, max)
	for _, p := range paths {
		if len(out) == max {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		if !IsImage(b) {
			continue
		}
		s, err := e.EncodeBytes(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// IsImage sniffs b for an image/* content type.
func IsImage(b []byte) bool {
	return strings.HasPrefix(http.DetectContentType(b), "image/")
}

// Decode parses a data URL produced by Encode.
func Decode(dataURL string) (image.Image, error) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return nil, ErrNotImage
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, dataURLPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

func (e Encoder) scale(src image.Image) *image.RGBA {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()

	maxW := e.MaxWidth
	if maxW <= 0 {
		maxW = DefaultMaxWidth
	}
	if w > maxW {
		ratio := float64(maxW) / float64(w)
		w = maxW
		h = int(math.Round(float64(h) * ratio))
		if h < 1 {
			h = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}

func (e Encoder) jpegQuality() int {
	q := e.Quality
	if q <= 0 || q > 1 {
		q = DefaultQuality
	}
	return int(math.Round(q * 100))
}
