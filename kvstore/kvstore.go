// Package kvstore is the persistent KV store used as the oracle's cache.
//
// It wraps go.etcd.io/bbolt: an embedded, single-writer, transactional KV
// store whose Update/View transactions commit synchronously and durably,
// matching spec section 5's requirement that "all store writes are
// synchronous and durable before the next oracle call is issued" without
// any extra fsync bookkeeping on our part.
//
// The two cache domains named in spec section 6 — node-hash to NodeData
// vector, and subtree-hash to complex type name — are kept disjoint using
// bbolt's native bucket namespacing rather than a key-prefixing scheme.
package kvstore

import (
	"encoding/json"

	"go.etcd.io/bbolt"

	"github.com/haldor-ness/docbasis/oracle"
	"github.com/haldor-ness/docbasis/xerr"
)

var (
	nodeDataBucket    = []byte("nodedata")
	complexTypeBucket = []byte("complextype")
)

// Store is a bbolt-backed cache. The zero value is not usable; construct
// one with [Open].
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if absent) the bbolt file at path and ensures both
// top-level buckets exist. The caller must call [Store.Close] when the
// normalize call finishes.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, xerr.New(xerr.CacheFailure, "kvstore.Open", "failed to open store").WithCause(err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(nodeDataBucket); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(complexTypeBucket); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, xerr.New(xerr.CacheFailure, "kvstore.Open", "failed to create buckets").WithCause(err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return xerr.New(xerr.CacheFailure, "kvstore.Close", "failed to close store").WithCause(err)
	}
	return nil
}

// GetNodeData looks up the cached NodeData vector for a node hash. ok is
// false on a cache miss, which is not an error.
func (s *Store) GetNodeData(nodeHash string) (data []oracle.NodeData, ok bool, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(nodeDataBucket).Get([]byte(nodeHash))
		if raw == nil {
			return nil
		}
		ok = true
		return json.Unmarshal(raw, &data)
	})
	if err != nil {
		return nil, false, xerr.New(xerr.CacheFailure, "kvstore.GetNodeData", "read failed").WithCause(err)
	}
	return data, ok, nil
}

// PutNodeData persists the NodeData vector for a node hash. The write is
// committed synchronously before PutNodeData returns.
func (s *Store) PutNodeData(nodeHash string, data []oracle.NodeData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return xerr.New(xerr.CacheFailure, "kvstore.PutNodeData", "encode failed").WithCause(err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(nodeDataBucket).Put([]byte(nodeHash), raw)
	})
	if err != nil {
		return xerr.New(xerr.CacheFailure, "kvstore.PutNodeData", "write failed").WithCause(err)
	}
	return nil
}

// GetComplexType looks up the cached complex type name for a subtree
// hash. ok is false on a cache miss, which is not an error.
func (s *Store) GetComplexType(subtreeHash string) (name string, ok bool, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(complexTypeBucket).Get([]byte(subtreeHash))
		if raw == nil {
			return nil
		}
		ok = true
		name = string(raw)
		return nil
	})
	if err != nil {
		return "", false, xerr.New(xerr.CacheFailure, "kvstore.GetComplexType", "read failed").WithCause(err)
	}
	return name, ok, nil
}

// PutComplexType persists the complex type name for a subtree hash.
func (s *Store) PutComplexType(subtreeHash, name string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(complexTypeBucket).Put([]byte(subtreeHash), []byte(name))
	})
	if err != nil {
		return xerr.New(xerr.CacheFailure, "kvstore.PutComplexType", "write failed").WithCause(err)
	}
	return nil
}
