package prescription

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: 128, B: uint8(y % 256), A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestImagePreprocessor(t *testing.T) {
	t.Run("produces a resized grayscale copy next to the input", func(t *testing.T) {
		input := writeTestPNG(t, 640, 480)
		p := NewImagePreprocessor(320)

		out, err := p.Preprocess(input)

		require.NoError(t, err)
		assert.Equal(t, input+".processed.png", out)

		f, err := os.Open(out)
		require.NoError(t, err)
		defer f.Close()
		img, err := png.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 320, img.Bounds().Dx())
	})

	t.Run("input is left in place for the caller to clean up", func(t *testing.T) {
		input := writeTestPNG(t, 100, 100)
		p := NewImagePreprocessor(100)

		_, err := p.Preprocess(input)

		require.NoError(t, err)
		assert.FileExists(t, input)
	})

	t.Run("unreadable input returns a preprocess error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.png")
		require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
		p := NewImagePreprocessor(320)

		_, err := p.Preprocess(path)

		require.Error(t, err)
		var preErr *PreprocessError
		assert.ErrorAs(t, err, &preErr)
	})
}
