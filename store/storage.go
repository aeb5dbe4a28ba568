// Package store persists recommended instructions.
//
// Storage is a small key/blob interface with an in-memory and a Badger implementation.
// InstructionStore layers the record format on top: an 8-byte header followed by the
// msgpack form of the instruction, optionally compressed.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Storage defines persistence methods for record blobs.
type Storage interface {
	Put(ctx context.Context, key string, blob []byte) error
	// Get returns false when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
	// Keys returns all keys that begin with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// KeyPrefixStorage wraps another Storage, prepending a fixed namespace to all keys.
// Keys strips the namespace before returning.
func KeyPrefixStorage(s Storage, namespace string) Storage {
	if namespace == "" {
		return s
	}

	return &prefixStorage{
		store:  s,
		prefix: namespace + ";",
	}
}

type prefixStorage struct {
	store  Storage
	prefix string
}

func (p *prefixStorage) Put(ctx context.Context, key string, blob []byte) error {
	return p.store.Put(ctx, p.prefix+key, blob)
}

func (p *prefixStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *prefixStorage) Delete(ctx context.Context, key string) error {
	return p.store.Delete(ctx, p.prefix+key)
}

func (p *prefixStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	underlying, err := p.store.Keys(ctx, p.prefix+prefix)
	if err != nil {
		return nil, err
	}

	stripped := make([]string, len(underlying))
	for i, k := range underlying {
		stripped[i] = strings.TrimPrefix(k, p.prefix)
	}

	return stripped, nil
}

func (p *prefixStorage) Close() error {
	return p.store.Close()
}

type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemStorage returns an in-memory Storage implementation.
func NewMemStorage() Storage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Put(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), blob...)

	return nil
}

func (m *memStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	blob, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), blob...), true, nil
}

func (m *memStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

func (m *memStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	return keys, nil
}

func (m *memStorage) Close() error {
	return nil
}

type badgerStorage struct {
	db *badger.DB
}

// NewBadgerStorage opens a Badger-backed Storage in path, creating the directory.
//
// Records are compressed by InstructionStore, so Badger's own block compression is off.
func NewBadgerStorage(path string) (Storage, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir failed: %w", err)
	}

	return openBadger(badger.DefaultOptions(path))
}

// NewInMemoryBadgerStorage opens a Badger-backed Storage that never touches disk.
func NewInMemoryBadgerStorage() (Storage, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true))
}

func openBadger(opts badger.Options) (Storage, error) {
	opts = opts.
		WithCompression(options.None).
		WithNumMemtables(2).
		WithMemTableSize(8 << 20).
		WithLoggingLevel(badger.ERROR).
		WithMetricsEnabled(false)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage db failed: %w", err)
	}

	return &badgerStorage{db: db}, nil
}

func (b *badgerStorage) Put(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), blob)
	})
}

func (b *badgerStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var blob []byte
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}

			return err
		}
		found = true
		blob, err = item.ValueCopy(nil)

		return err
	})
	if err != nil {
		return nil, false, err
	}

	return blob, found, nil
}

func (b *badgerStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (b *badgerStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			keys = append(keys, string(it.Item().Key()))
		}

		return nil
	})

	return keys, err
}

func (b *badgerStorage) Close() error {
	return b.db.Close()
}
