package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Store is the JSON adapter every repository goes through. None of its
// methods return an error: failures are logged and reported as false, and a
// failed read leaves the destination untouched.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// NewStore wraps backend. A nil logger uses slog.Default().
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// ReadStatus is the outcome of Fetch.
type ReadStatus int

const (
	// Absent means the key holds no value.
	Absent ReadStatus = iota
	// Loaded means the value was read and decoded into the destination.
	Loaded
	// Failed means the value exists but could not be read or decoded.
	Failed
)

// Fetch decodes the JSON value under key into dst and reports which of
// absent, loaded or failed happened. dst is untouched unless Loaded.
func (s *Store) Fetch(key string, dst interface{}) ReadStatus {
	data, err := s.backend.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return Absent
	}
	if err != nil {
		s.logger.Error("storage read failed", "key", key, "error", err)
		return Failed
	}
	if err := unmarshalEntity(data, dst); err != nil {
		s.logger.Error("storage decode failed", "key", key, "error", err)
		return Failed
	}
	return Loaded
}

// Read decodes the JSON value under key into dst. It reports false when the
// key is absent or the value cannot be read or decoded.
func (s *Store) Read(key string, dst interface{}) bool {
	return s.Fetch(key, dst) == Loaded
}

// ReadInt reads an integer stored as its decimal representation.
func (s *Store) ReadInt(key string) (int, bool) {
	data, err := s.backend.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return 0, false
	}
	if err != nil {
		s.logger.Error("storage read failed", "key", key, "error", err)
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		s.logger.Error("storage decode failed", "key", key, "error", err)
		return 0, false
	}
	return n, true
}

// Write replaces the value under key with the JSON encoding of v.
func (s *Store) Write(key string, v interface{}) bool {
	data, err := marshalEntity(v)
	if err != nil {
		s.logger.Error("storage encode failed", "key", key, "error", err)
		return false
	}
	if err := s.backend.Set(key, data); err != nil {
		s.logger.Error("storage write failed", "key", key, "error", err)
		return false
	}
	return true
}

// WriteAll writes every value in one all-or-nothing batch. Nothing is
// written if any value fails to encode.
func (s *Store) WriteAll(values ...Value) bool {
	entries := make([]Entry, 0, len(values))
	for _, v := range values {
		data, err := v.encode()
		if err != nil {
			s.logger.Error("storage encode failed", "key", v.Key, "error", err)
			return false
		}
		entries = append(entries, Entry{Key: v.Key, Value: data})
	}
	if err := s.backend.SetMany(entries); err != nil {
		s.logger.Error("storage batch write failed", "keys", len(entries), "error", err)
		return false
	}
	return true
}

// Remove deletes key.
func (s *Store) Remove(key string) bool {
	if err := s.backend.Delete(key); err != nil {
		s.logger.Error("storage remove failed", "key", key, "error", err)
		return false
	}
	return true
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Value is one key of a WriteAll batch.
type Value struct {
	Key    string
	encode func() ([]byte, error)
}

// JSON returns a batch value holding the JSON encoding of v.
func JSON(key string, v interface{}) Value {
	return Value{Key: key, encode: func() ([]byte, error) { return marshalEntity(v) }}
}

// Int returns a batch value holding n as a decimal string.
func Int(key string, n int) Value {
	return Value{Key: key, encode: func() ([]byte, error) { return []byte(strconv.Itoa(n)), nil }}
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
