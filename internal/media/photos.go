package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"ponsiv/internal/domain"
)

// URLPrefix is the path prefix of stored photos as seen by clients.
const URLPrefix = "media/"

var (
	ErrInvalidImage = errors.New("unsupported or corrupt image")

	reUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// PhotoStore keeps user photos (avatars, look covers) as JPEG files under Dir.
type PhotoStore struct {
	Dir     string
	MaxSide int // 0 keeps the original size
	Quality int
}

func NewPhotoStore(dir string) *PhotoStore {
	return &PhotoStore{Dir: dir, MaxSide: 1600, Quality: 85}
}

// SanitizeName maps name to a safe file stem; an empty result becomes a uuid.
func SanitizeName(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	s := reUnsafe.ReplaceAllString(name, "_")
	if strings.Trim(s, "_") == "" {
		return uuid.NewString()
	}
	return s
}

// Save decodes r, shrinks it to fit MaxSide and writes it as <name>.jpg.
// It returns the client-relative path "media/<name>.jpg".
func (s *PhotoStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.Wrap(domain.ErrCancelled, err)
	}
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", domain.Wrap(ErrInvalidImage, err)
	}
	img = s.fit(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(s.quality())); err != nil {
		return "", domain.Wrap(domain.ErrPersistenceFailed, pkgerrors.Wrap(err, "encode jpeg"))
	}
	file := SanitizeName(name) + ".jpg"
	if err := s.write(file, buf.Bytes()); err != nil {
		return "", domain.Wrap(domain.ErrPersistenceFailed, err)
	}
	return URLPrefix + file, nil
}

// Delete removes a photo previously returned by Save. Missing files are ignored.
func (s *PhotoStore) Delete(path string) error {
	file := strings.TrimPrefix(filepath.ToSlash(path), URLPrefix)
	if file == "" || strings.ContainsAny(file, `/\`) || file == ".." {
		return domain.ErrNotFound
	}
	err := os.Remove(filepath.Join(s.Dir, file))
	if err != nil && !os.IsNotExist(err) {
		return domain.Wrap(domain.ErrPersistenceFailed, err)
	}
	return nil
}

func (s *PhotoStore) fit(img image.Image) image.Image {
	if s.MaxSide <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= s.MaxSide && b.Dy() <= s.MaxSide {
		return img
	}
	return imaging.Fit(img, s.MaxSide, s.MaxSide, imaging.Lanczos)
}

func (s *PhotoStore) quality() int {
	if s.Quality <= 0 || s.Quality > 100 {
		return 85
	}
	return s.Quality
}

func (s *PhotoStore) write(file string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return pkgerrors.Wrap(err, "create media dir")
	}
	tmp, err := os.CreateTemp(s.Dir, ".tmp-*")
	if err != nil {
		return pkgerrors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(err, "write photo")
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrap(err, "close photo")
	}
	if err := os.Rename(tmpPath, filepath.Join(s.Dir, file)); err != nil {
		return pkgerrors.Wrapf(err, "rename photo %s", file)
	}
	ok = true
	return nil
}
