package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/todolor/internal/cipher"
)

// lockName is the advisory lock file inside the store directory.
// Type names may not start with '.', so it never collides with a type file.
const lockName = ".lock"

// Store provides durable per-type record storage in a single directory.
// Each type lives in one file named after the type.
type Store struct {
	dir     string
	logger  *slog.Logger
	locking bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocking enables or disables the advisory directory lock taken around
// every operation. Enabled by default.
func WithLocking(enabled bool) Option {
	return func(s *Store) {
		s.locking = enabled
	}
}

// Open creates a Store over an existing directory.
// The directory is not created; a missing directory is a PATH_ERROR.
func Open(dir string, opts ...Option) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, newPathError(dir, err)
	}
	if !info.IsDir() {
		return nil, newPathError(dir, fmt.Errorf("not a directory"))
	}

	s := &Store{
		dir:     dir,
		logger:  slog.Default(),
		locking: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the store's base directory.
func (s *Store) Dir() string {
	return s.dir
}

// GetAll returns every record of the given type in insertion order.
// An absent type file is created empty. Stored elements that are not JSON
// objects are returned as nil Records.
func (s *Store) GetAll(typ string) ([]Record, error) {
	var entities []Record
	err := s.withLock(func() error {
		st, err := s.readState(typ)
		if err != nil {
			return err
		}
		entities = make([]Record, len(st.entities))
		for i, e := range st.entities {
			entities[i], _ = e.(Record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// Add appends a copy of rec stamped with a fresh id and returns the id.
// Ids start at 0 and are never reused for a type.
func (s *Store) Add(typ string, rec Record) (int, error) {
	if err := validateRecord(rec, ""); err != nil {
		return 0, newValidationError(typ, err.Error())
	}

	var id int
	err := s.withLock(func() error {
		st, err := s.readState(typ)
		if err != nil {
			return err
		}
		if st.hasCounter && int(st.counter) == MaxID {
			// No reindexing: ids are never reused.
			return newOverflowError(typ)
		}
		if st.hasCounter {
			st.counter++
		} else {
			st.counter = 0
			st.hasCounter = true
		}
		id = int(st.counter)

		entity := rec.Clone()
		entity[IDKey] = id
		st.entities = append(st.entities, entity)
		return s.writeState(typ, st)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("record added", "type", typ, "id", id)
	return id, nil
}

// Edit shallow-merges partial into the stored record whose id equals
// partial["id"]. Keys absent from partial are left untouched.
func (s *Store) Edit(typ string, partial Record) (int, error) {
	if _, ok := partial[IDKey]; !ok {
		return 0, newValidationError(typ, "record must have an id")
	}
	id, ok := partial.ID()
	if !ok {
		return 0, newValidationError(typ, fmt.Sprintf("id %v is not an integer", partial[IDKey]))
	}
	if err := validateRecord(partial, ""); err != nil {
		return 0, newValidationError(typ, err.Error())
	}

	err := s.withLock(func() error {
		st, err := s.readState(typ)
		if err != nil {
			return err
		}
		idx := indexOf(st.entities, id)
		if idx < 0 {
			return NewNotFoundError(typ, id)
		}

		target := st.entities[idx].(Record)
		for k, v := range partial.Clone() {
			target[k] = v
		}
		target[IDKey] = id
		return s.writeState(typ, st)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("record edited", "type", typ, "id", id)
	return id, nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(typ string, id int) error {
	err := s.withLock(func() error {
		st, err := s.readState(typ)
		if err != nil {
			return err
		}
		idx := indexOf(st.entities, id)
		if idx < 0 {
			return NewNotFoundError(typ, id)
		}
		st.entities = slices.Delete(st.entities, idx, idx+1)
		return s.writeState(typ, st)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("record deleted", "type", typ, "id", id)
	return nil
}

// indexOf finds a record by id equality, not position.
// Elements that are not records never match.
func indexOf(entities []any, id int) int {
	return slices.IndexFunc(entities, func(e any) bool {
		r, ok := e.(Record)
		if !ok {
			return false
		}
		rid, ok := r.ID()
		return ok && rid == id
	})
}

// typePath validates a type name and returns its file path.
func (s *Store) typePath(typ string) (string, error) {
	switch {
	case typ == "":
		return "", newValidationError(typ, "type name must not be empty")
	case strings.HasPrefix(typ, "."):
		return "", newValidationError(typ, "type name must not start with '.'")
	case strings.ContainsAny(typ, `/\`) || typ != filepath.Base(typ):
		return "", newValidationError(typ, "type name must not contain a path separator")
	}
	return filepath.Join(s.dir, typ), nil
}

// readState reads and decodes a type file, creating it empty if absent.
func (s *Store) readState(typ string) (fileState, error) {
	path, err := s.typePath(typ)
	if err != nil {
		return fileState{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fileState{}, fmt.Errorf("create %s: %w", path, err)
		}
		s.logger.Debug("created store file", "type", typ, "path", path)
		data = nil
	} else if err != nil {
		return fileState{}, fmt.Errorf("read %s: %w", path, err)
	}

	st, err := unmarshalFile(cipher.Decode(data))
	if err != nil {
		return fileState{}, newFormatError(typ, err)
	}
	return st, nil
}

// writeState rewrites the whole type file. The content is written to a
// temporary file first and renamed over the target.
func (s *Store) writeState(typ string, st fileState) error {
	path, err := s.typePath(typ)
	if err != nil {
		return err
	}

	data, err := marshalFile(st)
	if err != nil {
		return err
	}

	tmp := filepath.Join(s.dir, "."+typ+".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, cipher.Encode(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// withLock runs fn while holding the directory lock, if locking is enabled.
func (s *Store) withLock(fn func() error) error {
	if !s.locking {
		return fn()
	}
	unlock, err := lockFile(filepath.Join(s.dir, lockName))
	if err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Error("error releasing store lock", "error", err)
		}
	}()
	return fn()
}
