// Package storage is the persistent key/value layer. A Backend moves raw
// bytes; a Store puts a JSON codec on top and never fails its callers.
package storage

import (
	"errors"
	"io"
)

// ErrKeyNotFound is returned by Backend.Get for an absent key.
var ErrKeyNotFound = errors.New("key not found")

// Entry is a single key/value pair written by Backend.SetMany.
type Entry struct {
	Key   string
	Value []byte
}

// Backend is a durable byte-oriented key/value store. Each Set replaces the
// whole value under its key.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// SetMany writes all entries or none of them.
	SetMany(entries []Entry) error
	Delete(key string) error
	Close() error
}

// Clearer is a Backend that can drop all of its keys.
type Clearer interface {
	Clear() error
}

// Archiver is a Backend that can stream a full backup and load one back.
type Archiver interface {
	Backup(w io.Writer) error
	Restore(r io.Reader) error
}

// Logical keys of the help board.
const (
	KeyPosts       = "posts"
	KeyClosedCount = "closedCount"
	KeyHelpCount   = "helpCount"
	KeyUsers       = "communityHelp_users"
	KeySession     = "communityHelp_currentUser"
)
