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
package blocks

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/consensys/go-bcedit/pkg/clipboard"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

// ErrNotFound indicates no block of the requested name exists.
var ErrNotFound = errors.New("block not found")

const schema = `CREATE TABLE IF NOT EXISTS blocks (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL UNIQUE,
	source  TEXT NOT NULL,
	size    INTEGER NOT NULL,
	saved   INTEGER NOT NULL,
	payload BLOB NOT NULL
)`

// Entry summarises a saved block.
type Entry struct {
	ID   string
	Name string
	// Method from which the block was copied.
	Source string
	// Number of instructions in the block.
	Size  int
	Saved time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%d instructions from %s)", e.Name, e.Size, e.Source)
}

// payload is the serial form of a block.
type payload struct {
	Context clipboard.Context `cbor:"1,keyasint"`
	Code    []insn.Record     `cbor:"2,keyasint"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("blocks: failed to create CBOR enc mode: %v", err))
	}
	//
	encMode = em
}

// Library is a persistent collection of named clipboard blocks, held in an
// SQLite database.  A library may be shared between goroutines.
type Library struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open the library at a given path, creating it (and any missing directories)
// if necessary.
func Open(path string) (*Library, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}
	//
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}
	//
	if _, err = db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	//
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}
	//
	log.Debugf("opened block library %s", path)
	//
	return &Library{db: db, path: path}, nil
}

// Path returns the location of this library.
func (l *Library) Path() string {
	return l.path
}

// Close the library.
func (l *Library) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	//
	return nil
}

// Save a block under a given name, replacing any block already saved under
// that name (whose identifier is then retained).  The identifier of the saved
// block is returned.
func (l *Library) Save(name string, block *clipboard.Block) (string, error) {
	if name == "" {
		return "", errors.New("block name cannot be empty")
	}
	//
	records, err := insn.Encode(block.Instructions())
	if err != nil {
		return "", fmt.Errorf("encoding block %s: %w", name, err)
	}
	//
	bytes, err := encMode.Marshal(payload{block.Context(), records})
	if err != nil {
		return "", fmt.Errorf("encoding block %s: %w", name, err)
	}
	//
	l.mu.Lock()
	defer l.mu.Unlock()
	//
	var id string
	//
	err = l.db.QueryRow("SELECT id FROM blocks WHERE name = ?", name).Scan(&id)
	//
	if errors.Is(err, sql.ErrNoRows) {
		id = uuid.New().String()
	} else if err != nil {
		return "", fmt.Errorf("querying block %s: %w", name, err)
	}
	//
	_, err = l.db.Exec(
		"INSERT OR REPLACE INTO blocks (id, name, source, size, saved, payload) VALUES (?, ?, ?, ?, ?, ?)",
		id, name, block.Context().String(), block.Len(), time.Now().Unix(), bytes)
	if err != nil {
		return "", fmt.Errorf("saving block %s: %w", name, err)
	}
	//
	return id, nil
}

// Load the block saved under a given name.  The block retains the context it
// was copied from, such that compatibility is still checked when pasting.
func (l *Library) Load(name string) (*clipboard.Block, error) {
	var (
		bytes []byte
		p     payload
	)
	//
	l.mu.Lock()
	err := l.db.QueryRow("SELECT payload FROM blocks WHERE name = ?", name).Scan(&bytes)
	l.mu.Unlock()
	//
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("querying block %s: %w", name, err)
	} else if err = cbor.Unmarshal(bytes, &p); err != nil {
		return nil, fmt.Errorf("decoding block %s: %w", name, err)
	}
	//
	code, err := insn.Decode(p.Code)
	if err != nil {
		return nil, fmt.Errorf("decoding block %s: %w", name, err)
	}
	//
	return clipboard.Capture(code, p.Context), nil
}

// List all saved blocks, ordered by name.
func (l *Library) List() ([]Entry, error) {
	var entries []Entry
	//
	l.mu.Lock()
	defer l.mu.Unlock()
	//
	rows, err := l.db.Query("SELECT id, name, source, size, saved FROM blocks ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing blocks: %w", err)
	}
	//
	defer rows.Close()
	//
	for rows.Next() {
		var (
			e     Entry
			saved int64
		)
		//
		if err := rows.Scan(&e.ID, &e.Name, &e.Source, &e.Size, &saved); err != nil {
			return nil, fmt.Errorf("listing blocks: %w", err)
		}
		//
		e.Saved = time.Unix(saved, 0)
		entries = append(entries, e)
	}
	//
	return entries, rows.Err()
}

// Delete the block saved under a given name.
func (l *Library) Delete(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	//
	res, err := l.db.Exec("DELETE FROM blocks WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting block %s: %w", name, err)
	}
	//
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	//
	return nil
}
