//go:build blackbox

package blackbox

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{B: 255, A: 255})
	}
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return p
}

func addArgs(db, ticker, entry, exit string, extra ...string) []string {
	args := []string{
		"add", "--db", db,
		"--date", "2024-05-06",
		"--entry-time", "06:31", "--exit-time", "07:59",
		"--ticker", ticker, "--strategy", "VWAP reclaim",
		"--cp", "put", "--dte", "1", "--strike", "505",
		"--entry", entry, "--exit", exit, "--contracts", "3",
	}
	return append(args, extra...)
}
