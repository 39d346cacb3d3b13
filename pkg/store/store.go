// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/consensys/go-padic/pkg/form"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no entry exists for a given run.
var ErrNotFound = errors.New("entry not found")

const prefix = "form/"

// Config determines how a store is opened.
type Config struct {
	// Directory holding the database, ignored when InMemory holds.
	Path string
	// Keep everything in memory.
	InMemory bool
	// Sync every write to disk.
	SyncWrites bool
	// Forward the database's own log messages to the standard logger.
	Logging bool
}

// Entry is a single persisted form, together with the information needed to
// reconstruct it against its tables.
type Entry struct {
	ID uuid.UUID `json:"id"`
	// Name of the tables the form was computed over.
	Tables string `json:"tables"`
	// Operation which produced the form (e.g. "lift").
	Kind string `json:"kind"`
	// Target precision of the computation.
	Precision int         `json:"precision"`
	Created   time.Time   `json:"created"`
	Form      form.Record `json:"form"`
}

// Store persists forms in a badger database, keyed by run identifier.
type Store struct {
	db *badger.DB
}

// Open a store for a given configuration.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	//
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else if cfg.Path == "" {
		return nil, errors.New("path is required for persistent store")
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		//
		opts = badger.DefaultOptions(cfg.Path)
	}
	//
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	//
	if cfg.Logging {
		opts = opts.WithLogger(log.WithField("component", "badger"))
	} else {
		opts = opts.WithLogger(nil)
	}
	//
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	//
	return &Store{db}, nil
}

// Close the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes an entry, allocating a fresh identifier (and creation time) when
// none is given.  The identifier is returned.
func (s *Store) Put(e Entry) (uuid.UUID, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	//
	if e.Created.IsZero() {
		e.Created = time.Now().UTC()
	}
	//
	bytes, err := json.Marshal(e)
	if err != nil {
		return uuid.Nil, err
	}
	//
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(e.ID), bytes)
	})
	//
	if err != nil {
		return uuid.Nil, fmt.Errorf("write %s: %w", e.ID, err)
	}
	//
	log.Debugf("stored %s (%d bytes)", e.ID, len(bytes))
	//
	return e.ID, nil
}

// Get reads the entry for a given identifier.
func (s *Store) Get(id uuid.UUID) (Entry, error) {
	var e Entry
	//
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		} else if err != nil {
			return err
		}
		//
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	//
	return e, err
}

// Delete the entry for a given identifier, which must exist.
func (s *Store) Delete(id uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		} else if err != nil {
			return err
		}
		//
		return txn.Delete(key(id))
	})
}

// List all entries in key order.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	//
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		//
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			var e Entry
			//
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			//
			if err != nil {
				return fmt.Errorf("read %s: %w", it.Item().Key(), err)
			}
			//
			entries = append(entries, e)
		}
		//
		return nil
	})
	//
	return entries, err
}

func key(id uuid.UUID) []byte {
	return []byte(prefix + id.String())
}
