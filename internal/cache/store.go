// internal/cache/store.go
package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by Store.Get for absent or expired keys.
var ErrNotFound = errors.New("cache: not found")

// StoreConfig selects where the disk tier lives.
type StoreConfig struct {
	Dir      string // ignored when InMemory
	InMemory bool
	TTL      time.Duration // 0 keeps entries forever
	Logger   *slog.Logger
}

// Store is the persistent tier: one badger key per design.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

type badgerLogger struct{ log *slog.Logger }

func (l badgerLogger) Errorf(f string, a ...interface{})   { l.log.Error(fmt.Sprintf(f, a...)) }
func (l badgerLogger) Warningf(f string, a ...interface{}) { l.log.Warn(fmt.Sprintf(f, a...)) }
func (l badgerLogger) Infof(f string, a ...interface{})    { l.log.Debug(fmt.Sprintf(f, a...)) }
func (l badgerLogger) Debugf(f string, a ...interface{})   { l.log.Debug(fmt.Sprintf(f, a...)) }

func OpenStore(cfg StoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, errors.New("cache: dir is required for a persistent store")
		}
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("cache: create %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{log: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts.WithNumVersionsToKeep(1))
	if err != nil {
		return nil, fmt.Errorf("cache: open badger: %w", err)
	}
	return &Store{db: db, ttl: cfg.TTL}, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return out, err
}

func (s *Store) Put(key string, val []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), val)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
}

func (s *Store) Close() error { return s.db.Close() }
