// Package store holds the single in-memory copy of the persisted document and
// writes it back wholesale after every mutation.
package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"ponsiv/internal/domain"
	applog "ponsiv/internal/log"
)

// Store serialises every read and write of the document under one mutex.
// Callbacks passed to View and Update must not call back into the Store, and
// must not keep references to document maps or slices after returning.
type Store struct {
	mu      sync.Mutex
	backend Backend
	codec   Codec
	doc     *Document
}

type Option func(*Store)

func WithCodec(c Codec) Option { return func(s *Store) { s.codec = c } }

// Open loads the document from backend, starting empty when nothing is stored.
func Open(ctx context.Context, backend Backend, opts ...Option) (*Store, error) {
	s := &Store{backend: backend, codec: JSONCodec{}}
	for _, o := range opts {
		o(s)
	}
	data, err := backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNoDocument):
		s.doc = NewDocument()
		return s, nil
	case err != nil:
		return nil, domain.Wrap(domain.ErrDecodingFailed, err)
	}
	doc, err := s.codec.Decode(data)
	if err != nil {
		return nil, domain.Wrap(domain.ErrDecodingFailed, err)
	}
	s.doc = doc
	return s, nil
}

// View runs fn against the in-memory document.
func (s *Store) View(ctx context.Context, fn func(*Document) error) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	return fn(s.doc)
}

// Update runs fn and, if it succeeds, persists the whole document before
// returning. fn must leave the document untouched when it returns an error.
// A failed write keeps the in-memory change and reports ErrPersistenceFailed.
func (s *Store) Update(ctx context.Context, fn func(*Document) error) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()
	if err := fn(s.doc); err != nil {
		return err
	}
	return s.persist(context.WithoutCancel(ctx))
}

// lock acquires the mutex unless ctx is done before or while waiting.
func (s *Store) lock(ctx context.Context) error {
	if ctx.Err() != nil {
		return domain.Wrap(domain.ErrCancelled, ctx.Err())
	}
	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		return domain.Wrap(domain.ErrCancelled, ctx.Err())
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	data, err := s.codec.Encode(s.doc)
	if err == nil {
		err = s.backend.Save(ctx, data)
	}
	if err != nil {
		applog.L().Error().Err(err).Str("action", "store.persist.fail").Msg("failed to persist state")
		return domain.Wrap(domain.ErrPersistenceFailed, err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Close()
}
