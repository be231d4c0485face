// Package mock provides an in-memory storage backend with failure injection.
package mock

import (
	"errors"
	"sync"

	"helpboard/app/storage"
)

// ErrInjected is returned by a Backend whose failure switches are on.
var ErrInjected = errors.New("injected storage failure")

type Backend struct {
	values map[string][]byte
	mutex  sync.RWMutex

	FailReads  bool
	FailWrites bool
	Writes     int
	// FailKey makes reads of this one key fail.
	FailKey string
}

func NewBackend() *Backend {
	return &Backend{values: make(map[string][]byte)}
}

func (m *Backend) Get(key string) ([]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.FailReads || (m.FailKey != "" && key == m.FailKey) {
		return nil, ErrInjected
	}
	value, exists := m.values[key]
	if !exists {
		return nil, storage.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *Backend) Set(key string, value []byte) error {
	return m.SetMany([]storage.Entry{{Key: key, Value: value}})
}

func (m *Backend) SetMany(entries []storage.Entry) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.FailWrites {
		return ErrInjected
	}
	for _, e := range entries {
		m.values[e.Key] = append([]byte(nil), e.Value...)
	}
	m.Writes++
	return nil
}

func (m *Backend) Delete(key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.FailWrites {
		return ErrInjected
	}
	delete(m.values, key)
	return nil
}

func (m *Backend) Close() error {
	return nil
}

// Raw returns the stored bytes for key, or nil.
func (m *Backend) Raw(key string) []byte {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.values[key]
}

// Put stores raw bytes, bypassing failure injection.
func (m *Backend) Put(key string, value []byte) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.values[key] = value
}
