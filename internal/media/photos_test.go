package media_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ponsiv/internal/domain"
	"ponsiv/internal/media"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveDownsizesAndEncodesJPEG(t *testing.T) {
	dir := t.TempDir()
	s := &media.PhotoStore{Dir: dir, MaxSide: 100, Quality: 80}

	rel, err := s.Save(context.Background(), "my look!.png", bytes.NewReader(pngBytes(t, 400, 200)))
	require.NoError(t, err)
	assert.Equal(t, "media/my_look_.jpg", rel)

	img, err := imaging.Open(filepath.Join(dir, "my_look_.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left")
}

func TestSaveRejectsGarbage(t *testing.T) {
	s := media.NewPhotoStore(t.TempDir())
	_, err := s.Save(context.Background(), "x", strings.NewReader("not an image"))
	assert.ErrorIs(t, err, media.ErrInvalidImage)
}

func TestSaveHonoursCancelledContext(t *testing.T) {
	s := media.NewPhotoStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Save(ctx, "x", bytes.NewReader(pngBytes(t, 4, 4)))
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "a_b_c", media.SanitizeName("a b/c.jpeg"))
	assert.Len(t, media.SanitizeName("$$$"), 36)
	assert.Len(t, media.SanitizeName(""), 36)
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	s := media.NewPhotoStore(dir)
	rel, err := s.Save(context.Background(), "cover", bytes.NewReader(pngBytes(t, 8, 8)))
	require.NoError(t, err)

	require.NoError(t, s.Delete(rel))
	_, err = os.Stat(filepath.Join(dir, "cover.jpg"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Delete(rel), "deleting twice is a no-op")
	assert.ErrorIs(t, s.Delete("media/../state.json"), domain.ErrNotFound)
}
