package storage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBackend stores values in an embedded Badger database.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a Badger database in dir.
func OpenBadger(dir string) (*BadgerBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", dir, err)
	}
	return &BadgerBackend{db: db}, nil
}

// OpenBadgerInMemory opens a Badger database that lives only in memory.
func OpenBadgerInMemory() (*BadgerBackend, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

func (b *BadgerBackend) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (b *BadgerBackend) Set(key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (b *BadgerBackend) SetMany(entries []Entry) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, e := range entries {
			if err := txn.Set([]byte(e.Key), e.Value); err != nil {
				return fmt.Errorf("failed to stage %s: %w", e.Key, err)
			}
		}
		return nil
	})
}

func (b *BadgerBackend) Delete(key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Clear drops every key.
func (b *BadgerBackend) Clear() error {
	return b.db.DropAll()
}

// Backup streams a full backup of the database to w.
func (b *BadgerBackend) Backup(w io.Writer) error {
	if _, err := b.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to backup database: %w", err)
	}
	return nil
}

// Restore loads a stream produced by Backup into the database.
func (b *BadgerBackend) Restore(r io.Reader) error {
	if err := b.db.Load(r, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
