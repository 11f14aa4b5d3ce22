package storage

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
)

// Namespace selects which storage area a key lives in.
type Namespace int

const (
	// Durable entries survive process restarts. They are written as JSON
	// files under the store's state directory.
	Durable Namespace = iota
	// Session entries live only for the lifetime of the process.
	Session
)

// Store is a best-effort key-value snapshot store. Values are serialized as
// JSON. A value that cannot be read back is treated as absent; a value that
// cannot be written is dropped and logged. Callers must not rely on the
// store for durability guarantees.
type Store struct {
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	session map[string][]byte
}

// Open returns a Store backed by the given directory for durable entries.
// The directory is created on first write. A nil logger disables logging.
func Open(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		dir:     dir,
		logger:  logger,
		session: make(map[string][]byte),
	}
}

// Set serializes value and stores it under key in the given namespace.
// A nil value removes the key instead.
func (s *Store) Set(ns Namespace, key string, value any) {
	if value == nil {
		s.Delete(ns, key)
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("storage set dropped", "key", key, "err", err)
		return
	}

	if ns == Session {
		s.mu.Lock()
		s.session[key] = data
		s.mu.Unlock()
		return
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Warn("storage set dropped", "key", key, "err", err)
		return
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		s.logger.Warn("storage set dropped", "key", key, "err", err)
	}
}

// Get reads the value stored under key into dest, which must be a pointer.
// It reports whether a usable value was found. Missing keys and values that
// fail to deserialize both report false.
func (s *Store) Get(ns Namespace, key string, dest any) bool {
	var data []byte

	if ns == Session {
		s.mu.Lock()
		data = s.session[key]
		s.mu.Unlock()
		if data == nil {
			return false
		}
	} else {
		raw, err := os.ReadFile(s.path(key))
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				s.logger.Warn("storage get failed", "key", key, "err", err)
			}
			return false
		}
		data = raw
	}

	// Decode into a scratch copy so a corrupt entry cannot leave dest
	// half-written. The scratch starts from dest's current value, so
	// fields absent from the stored snapshot keep their defaults.
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		s.logger.Warn("storage get needs a non-nil pointer", "key", key)
		return false
	}
	scratch := reflect.New(rv.Type().Elem())
	scratch.Elem().Set(rv.Elem())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		s.logger.Warn("storage entry unreadable", "key", key, "err", err)
		return false
	}
	rv.Elem().Set(scratch.Elem())
	return true
}

// Delete removes the key from the given namespace. Removing a missing key
// is a no-op.
func (s *Store) Delete(ns Namespace, key string) {
	if ns == Session {
		s.mu.Lock()
		delete(s.session, key)
		s.mu.Unlock()
		return
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("storage delete failed", "key", key, "err", err)
	}
}

// Terminate clears every key in the given namespaces, or in both when none
// are specified.
func (s *Store) Terminate(namespaces ...Namespace) {
	if len(namespaces) == 0 {
		namespaces = []Namespace{Durable, Session}
	}
	for _, ns := range namespaces {
		if ns == Session {
			s.mu.Lock()
			s.session = make(map[string][]byte)
			s.mu.Unlock()
			continue
		}
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			_ = os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}
}

func (s *Store) path(key string) string {
	// Keys are caller-chosen identifiers, not paths.
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, key)
	return filepath.Join(s.dir, safe+".json")
}
