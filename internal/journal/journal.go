// Package journal keeps a local record of broadcast transactions so the
// CLI can show history without querying the DEX.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Klingon-tech/binance-chain-go/internal/log"
	"github.com/Klingon-tech/binance-chain-go/internal/storage"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// ErrNotFound is returned when no entry matches a lookup.
var ErrNotFound = errors.New("journal entry not found")

// Key prefixes.
var (
	prefixEntry = []byte("e/") // e/<address><sequence> -> Entry JSON
	prefixHash  = []byte("h/") // h/<hash> -> entry key
)

// Entry is one broadcast transaction.
type Entry struct {
	Hash     types.Hash    `json:"hash"`
	Address  types.Address `json:"address"`
	Kind     string        `json:"kind"`
	Sequence int64         `json:"sequence"`
	Hex      string        `json:"hex"`
	Code     uint32        `json:"code"`
	Log      string        `json:"log,omitempty"`
	Time     time.Time     `json:"time"`
}

// OK reports whether the chain accepted the transaction.
func (e *Entry) OK() bool { return e.Code == 0 }

// Journal stores entries in a storage.DB.
type Journal struct {
	db storage.DB
}

// New creates a journal backed by db.
func New(db storage.DB) *Journal {
	return &Journal{db: db}
}

// entryKey builds "e/" + addr(20) + sequence(8, big endian) so that
// prefix iteration yields an account's entries in sequence order.
func entryKey(addr types.Address, sequence int64) []byte {
	key := make([]byte, len(prefixEntry)+types.AddressSize+8)
	copy(key, prefixEntry)
	copy(key[len(prefixEntry):], addr[:])
	binary.BigEndian.PutUint64(key[len(prefixEntry)+types.AddressSize:], uint64(sequence))
	return key
}

func hashKey(h types.Hash) []byte {
	key := make([]byte, len(prefixHash)+types.HashSize)
	copy(key, prefixHash)
	copy(key[len(prefixHash):], h[:])
	return key
}

func addrPrefix(addr types.Address) []byte {
	p := make([]byte, len(prefixEntry)+types.AddressSize)
	copy(p, prefixEntry)
	copy(p[len(prefixEntry):], addr[:])
	return p
}

// Record stores e, replacing any earlier entry for the same address and
// sequence. A zero Time is set to now.
func (j *Journal) Record(e Entry) error {
	if e.Sequence < 0 {
		return fmt.Errorf("journal record: negative sequence %d", e.Sequence)
	}
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	data, err := json.Marshal(&e)
	if err != nil {
		return fmt.Errorf("journal marshal: %w", err)
	}

	key := entryKey(e.Address, e.Sequence)
	prev, err := j.load(key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	b := j.batch()
	if prev != nil && prev.Hash != e.Hash {
		if err := b.Delete(hashKey(prev.Hash)); err != nil {
			return fmt.Errorf("journal index delete: %w", err)
		}
	}
	if err := b.Put(key, data); err != nil {
		return fmt.Errorf("journal put: %w", err)
	}
	if err := b.Put(hashKey(e.Hash), key); err != nil {
		return fmt.Errorf("journal index put: %w", err)
	}
	if err := b.Commit(); err != nil {
		return fmt.Errorf("journal commit: %w", err)
	}

	log.Journal.Debug().
		Str("hash", e.Hash.String()).
		Str("kind", e.Kind).
		Int64("sequence", e.Sequence).
		Uint32("code", e.Code).
		Msg("Recorded transaction")
	return nil
}

// Get returns the entry with the given transaction hash.
func (j *Journal) Get(hash types.Hash) (*Entry, error) {
	key, err := j.db.Get(hashKey(hash))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("journal get: %w", err)
	}
	return j.load(key)
}

// List returns the entries recorded for addr in sequence order.
func (j *Journal) List(addr types.Address) ([]*Entry, error) {
	var out []*Entry
	err := j.db.ForEach(addrPrefix(addr), func(_, value []byte) error {
		var e Entry
		if err := json.Unmarshal(value, &e); err != nil {
			return fmt.Errorf("journal unmarshal: %w", err)
		}
		out = append(out, &e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (j *Journal) load(key []byte) (*Entry, error) {
	data, err := j.db.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("journal get: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("journal unmarshal: %w", err)
	}
	return &e, nil
}

func (j *Journal) batch() storage.Batch {
	return storage.NewBatch(j.db)
}
