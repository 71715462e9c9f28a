package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNoDocument is returned by Backend.Load when nothing has been stored yet.
var ErrNoDocument = errors.New("store: no document")

// Backend is the medium holding the encoded document. Save replaces the whole content.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

const StateFileName = "state.json"

// FileBackend keeps the document in a single file, replaced by atomic rename.
type FileBackend struct {
	path string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create state dir %s", dir)
	}
	return &FileBackend{path: filepath.Join(dir, StateFileName)}, nil
}

func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDocument
		}
		return nil, errors.Wrapf(err, "read %s", b.path)
	}
	return data, nil
}

func (b *FileBackend) Save(ctx context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		return errors.Wrapf(err, "rename to %s", b.path)
	}
	success = true
	return nil
}

func (b *FileBackend) Close() error { return nil }
