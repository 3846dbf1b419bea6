package jsonstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/ohler55/ojg/oj"

	"github.com/routeway/routeway/pkg/logging"
)

// Store holds one JSON document in memory and keeps a backing file in
// sync through a detached background worker. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	value any

	// dirty is a single-slot signal. A pending unread signal is never
	// duplicated, so bursts of patches coalesce into one flush.
	dirty chan struct{}

	path   string
	pretty bool
	log    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPretty makes the sync worker write indented JSON.
func WithPretty(pretty bool) Option {
	return func(s *Store) {
		s.pretty = pretty
	}
}

// WithLogger sets the store's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Open loads the file at path as a single JSON document and starts the
// sync worker. A parse failure is a construction error; the caller is
// expected to abort startup.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		dirty: make(chan struct{}, 1),
		path:  path,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open json store file %q: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to read json store file %q: %w", path, err)
	}
	value, err := oj.Parse(data)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to parse JSON from %q: %w", path, err)
	}
	s.value = value

	w := &syncWorker{store: s, file: file}
	go w.run()

	return s, nil
}

// Get returns the serialized sub-value addressed by pointer, or
// ErrNotFound. Concurrent Gets run in parallel.
func (s *Store) Get(pointer string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, err := resolve(s.value, pointer)
	if err != nil {
		return nil, err
	}
	return []byte(oj.JSON(sub)), nil
}

// Patch applies an RFC 6902 patch document to the sub-value addressed
// by pointer and returns the serialized result. The application is
// atomic: if any operation fails, the document is unchanged and the
// error classifies the failure (ErrBadPatch, ErrNotFound,
// ErrTestFailed). On success the dirty signal is raised exactly once.
func (s *Store) Patch(pointer string, patch []byte) ([]byte, error) {
	decoded, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPatch, err)
	}

	result, err := s.applyPatch(pointer, decoded)
	if err != nil {
		return nil, err
	}

	s.signalDirty()
	return result, nil
}

// applyPatch holds the write lock for the resolve-and-apply critical
// section only; no I/O happens here.
func (s *Store) applyPatch(pointer string, patch jsonpatch.Patch) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := resolve(s.value, pointer)
	if err != nil {
		return nil, err
	}

	patched, err := patch.Apply([]byte(oj.JSON(sub)))
	if err != nil {
		return nil, classifyPatchError(err)
	}

	newSub, err := oj.Parse(patched)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPatch, err)
	}

	root, err := replace(s.value, pointer, newSub)
	if err != nil {
		return nil, err
	}
	s.value = root

	return []byte(oj.JSON(newSub)), nil
}

// classifyPatchError maps patch application failures onto the store's
// error taxonomy: failed test preconditions are conflicts, paths that
// do not exist are not-found, anything else is a malformed patch.
func classifyPatchError(err error) error {
	switch {
	case errors.Is(err, jsonpatch.ErrTestFailed):
		return fmt.Errorf("%w: %v", ErrTestFailed, err)
	case errors.Is(err, jsonpatch.ErrMissing),
		errors.Is(err, jsonpatch.ErrInvalidIndex),
		errors.Is(err, jsonpatch.ErrUnknownType):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %v", ErrBadPatch, err)
	}
}

// signalDirty raises the dirty signal without blocking. A signal that
// is already pending is not duplicated.
func (s *Store) signalDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// snapshot serializes the whole document. Shared read lock only for
// the duration of the serialize step.
func (s *Store) snapshot() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pretty {
		return []byte(oj.JSON(s.value, 2))
	}
	return []byte(oj.JSON(s.value))
}
