// Package cache keeps encoded generation results in BadgerDB, keyed by the
// (class, seed) pair that fully determines them.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"stellar-forge/internal/generator"
	"stellar-forge/internal/registry"
	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/version"
)

const keyPrefix = "system:"

// Config holds cache settings.
type Config struct {
	// Dir is the database directory. Empty keeps everything in memory.
	Dir string

	// TTL bounds entry lifetime. Zero keeps entries until evicted by hand.
	TTL time.Duration

	// Logger receives BadgerDB's internal messages. Nil silences them.
	Logger *slog.Logger
}

// Cache is safe for concurrent use.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open creates or reopens a cache.
func Open(cfg Config) (*Cache, error) {
	var opts badger.Options
	if cfg.Dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
			return nil, apperrors.WrapInternal("create cache directory "+cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger.With("component", "cache")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.WrapInternal("open badger cache", err)
	}
	return &Cache{db: db, ttl: cfg.TTL}, nil
}

// Key returns the cache key of a request. The generator version is part of
// the key so an upgrade never serves stale layouts.
func Key(class registry.SystemClass, seed uint64) []byte {
	if class == "" {
		class = "*"
	}
	return []byte(keyPrefix + version.Current.String() + ":" + string(class) + ":" + strconv.FormatUint(seed, 10))
}

// Get returns the cached result, or false on a miss.
func (c *Cache) Get(class registry.SystemClass, seed uint64) (*generator.SystemResult, bool, error) {
	var res generator.SystemResult
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(Key(class, seed))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &res)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.WrapInternal("read cache", err)
	}
	return &res, true, nil
}

// Put stores a result under the class it was requested with.
func (c *Cache) Put(class registry.SystemClass, seed uint64, res *generator.SystemResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return apperrors.WrapInternal("encode cache entry", err)
	}
	entry := badger.NewEntry(Key(class, seed), data)
	if c.ttl > 0 {
		entry = entry.WithTTL(c.ttl)
	}
	if err := c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	}); err != nil {
		return apperrors.WrapInternal("write cache", err)
	}
	return nil
}

// Delete evicts one entry.
func (c *Cache) Delete(class registry.SystemClass, seed uint64) error {
	if err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(Key(class, seed))
	}); err != nil {
		return apperrors.WrapInternal("delete cache entry", err)
	}
	return nil
}

// Len counts live entries.
func (c *Cache) Len() (int, error) {
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.WrapInternal("count cache entries", err)
	}
	return n, nil
}

// Close flushes and closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
