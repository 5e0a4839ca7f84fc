// Package store caches perft node counts on disk.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"chess-movegen/bitmg"

	"github.com/apex/log"
	"github.com/dgraph-io/badger/v4"
)

var ErrClosed = errors.New("store: closed")

// Store maps (position, depth) to a node count.
type Store struct {
	db *badger.DB
}

// Open opens or creates a cache in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory returns a cache that is discarded on Close.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", opts.Dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// key uses the first four FEN fields; the move clocks do not change the
// node count.
func key(fen string, depth int) ([]byte, error) {
	p, err := bitmg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(p.FEN())
	return []byte(fmt.Sprintf("perft/%d/%s", depth, strings.Join(fields[:4], " "))), nil
}

// Get returns the cached count and whether it was present.
func (s *Store) Get(fen string, depth int) (uint64, bool, error) {
	if s.db == nil {
		return 0, false, ErrClosed
	}
	k, err := key(fen, depth)
	if err != nil {
		return 0, false, err
	}
	var nodes uint64
	found := false
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("store: corrupt value for %q", k)
			}
			nodes = binary.BigEndian.Uint64(val)
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, err
	}
	log.WithFields(log.Fields{"key": string(k), "hit": found}).Debug("cache lookup")
	return nodes, found, nil
}

// Put records the count for fen at depth.
func (s *Store) Put(fen string, depth int, nodes uint64) error {
	if s.db == nil {
		return ErrClosed
	}
	k, err := key(fen, depth)
	if err != nil {
		return err
	}
	var val [8]byte
	binary.BigEndian.PutUint64(val[:], nodes)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, val[:])
	})
}
