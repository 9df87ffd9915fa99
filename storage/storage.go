// Package storage contains all the artifacts that are persisted by the
// engine. It is a prefixed key-value store over a dvote db.Database. The
// following prefixes are used:
//   - 'p/' for polls
//   - 'r/' for vote receipts
//   - 'g/' for tally access grants
//   - 'k/' for poll encryption keys
//   - 's/' for internal counters (poll id sequence)
package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

var (
	// Prefixes for the keys in the database.
	pollPrefix     = []byte("p/")
	receiptPrefix  = []byte("r/")
	grantPrefix    = []byte("g/")
	pollKeysPrefix = []byte("k/")
	sequencePrefix = []byte("s/")

	// pollSequenceKey holds the last assigned poll identifier.
	pollSequenceKey = []byte("poll_seq")
)

// ErrNotFound is returned when the artifact is not found in the storage.
var ErrNotFound = errors.New("not found")

// Storage wraps the database and provides artifact accessors for the engine.
type Storage struct {
	db         db.Database
	globalLock sync.Mutex
}

// New creates a new Storage instance.
func New(db db.Database) *Storage {
	return &Storage{db: db}
}

// Close closes the storage.
func (s *Storage) Close() {
	s.db.Close()
}

// encodeArtifact encodes an artifact deterministically with CBOR.
func encodeArtifact(a any) ([]byte, error) {
	encOpts := cbor.CoreDetEncOptions()
	em, err := encOpts.EncMode()
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return em.Marshal(a)
}

func decodeArtifact(data []byte, out any) error {
	return cbor.Unmarshal(data, out)
}

// setArtifact stores an artifact under the given prefix and key in its own
// transaction.
func (s *Storage) setArtifact(prefix, key []byte, a any) error {
	val, err := encodeArtifact(a)
	if err != nil {
		return err
	}
	wTx := prefixeddb.NewPrefixedWriteTx(s.db.WriteTx(), prefix)
	if err := wTx.Set(key, val); err != nil {
		wTx.Discard()
		return err
	}
	return wTx.Commit()
}

// getArtifact retrieves and decodes an artifact. It returns ErrNotFound if
// the key does not exist.
func (s *Storage) getArtifact(prefix, key []byte, out any) error {
	rTx := prefixeddb.NewPrefixedReader(s.db, prefix)
	data, err := rTx.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return ErrNotFound
		}
		return err
	}
	return decodeArtifact(data, out)
}

// hasArtifact reports whether a key exists under the given prefix.
func (s *Storage) hasArtifact(prefix, key []byte) (bool, error) {
	rTx := prefixeddb.NewPrefixedReader(s.db, prefix)
	if _, err := rTx.Get(key); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// listArtifacts returns the keys stored under the given prefix, optionally
// restricted to the given key prefix.
func (s *Storage) listArtifacts(prefix, keyPrefix []byte) ([][]byte, error) {
	rTx := prefixeddb.NewPrefixedReader(s.db, prefix)
	var keys [][]byte
	if err := rTx.Iterate(keyPrefix, func(k, _ []byte) bool {
		key := make([]byte, len(k))
		copy(key, k)
		keys = append(keys, key)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}
	return keys, nil
}
