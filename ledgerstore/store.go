// Package ledgerstore persists Asset records keyed by their address bytes
// in a LevelDB-backed key-value store (§6).
//
// This is a single-pool simplification of the source's multi-pool,
// reflection-driven storage package: a ledger subsystem has exactly one
// kind of record (Asset, keyed by its 32-byte address), so the prefix/
// PoolHandle machinery built for blocks+index+shares+owner-tx-index has no
// second pool to distinguish here. The version-check-on-open contract is
// kept, trimmed to one database.
package ledgerstore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldbopt "github.com/syndtr/goleveldb/leveldb/opt"
	ldbutil "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
)

var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentVersion = 0x100

// Store is a LevelDB-backed key-value pool for Asset records, keyed by
// asset address bytes.
type Store struct {
	mu  sync.RWMutex
	db  *leveldb.DB
	log *logger.L
}

// Open opens (creating if necessary) the LevelDB database at path.
func Open(path string, readOnly bool) (*Store, error) {
	opt := &ldbopt.Options{
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(path, opt)
	if err != nil {
		return nil, err
	}

	version, err := readVersion(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if version > currentVersion {
		db.Close()
		return nil, fmt.Errorf("ledgerstore: database version %#x > current version %#x", version, currentVersion)
	}
	if version == 0 {
		if err := writeVersion(db, currentVersion); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Store{db: db, log: logger.New("ledgerstore")}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
}

// Put stores value (an Asset's packed binary form) under key (an asset
// address's bytes).
func (s *Store) Put(key, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Put(key, value, nil)
}

// Get returns the value stored for key, or nil, false if absent.
func (s *Store) Get(key []byte) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false
	}
	if err != nil {
		s.log.Criticalf("ledgerstore: get: %s", err)
		panic(err)
	}
	return value, true
}

// Has reports whether key exists.
func (s *Store) Has(key []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ok, err := s.db.Has(key, nil)
	if err != nil {
		s.log.Criticalf("ledgerstore: has: %s", err)
		panic(err)
	}
	return ok
}

// Delete removes key.
func (s *Store) Delete(key []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Delete(key, nil)
}

// Element is a single key/value record returned by iteration.
type Element struct {
	Key   []byte
	Value []byte
}

// Iterate calls fn for every stored record in key order; the store's own
// version record is not visited. Iteration stops early if fn returns
// false.
func (s *Store) Iterate(fn func(Element) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	iter := s.db.NewIterator(&ldbutil.Range{}, nil)
	defer iter.Release()

	for iter.Next() {
		if bytes.Equal(iter.Key(), versionKey) {
			continue
		}
		key := append([]byte(nil), iter.Key()...)
		value := append([]byte(nil), iter.Value()...)
		if !fn(Element{Key: key, Value: value}) {
			break
		}
	}
	return iter.Error()
}

func readVersion(db *leveldb.DB) (int, error) {
	raw, err := db.Get(versionKey, nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(raw) != 4 {
		return 0, fmt.Errorf("ledgerstore: incompatible version record length: %d", len(raw))
	}
	return int(binary.BigEndian.Uint32(raw)), nil
}

func writeVersion(db *leveldb.DB, version int) error {
	raw := make([]byte, 4)
	binary.BigEndian.PutUint32(raw, uint32(version))
	return db.Put(versionKey, raw, nil)
}
