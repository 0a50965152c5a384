/* Copyright 2025 Quill Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package database provides the local SQLite store for quill. It holds
// client bookkeeping only, such as the session credential. Notes and
// notebooks are never persisted locally; the server is the source of truth.
package database

import (
	"database/sql"

	// the sqlite driver backing Open
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// DB is a database connection to the local quill database
type DB struct {
	*sql.DB
}

// Queryable is an interface for a database connection or a transaction
type Queryable interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS system (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Open opens a connection to the local database at the given path and
// ensures that the schema is in place.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening the database")
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		return nil, errors.Wrap(err, "initializing the schema")
	}

	return &DB{conn}, nil
}

// GetSystem scans the given system configuration record onto the destination
func GetSystem(db Queryable, key string, dest interface{}) error {
	return db.QueryRow("SELECT value FROM system WHERE key = ?", key).Scan(dest)
}

// UpsertSystem inserts or updates a system configuration record
func UpsertSystem(db Queryable, key string, val interface{}) error {
	var count int
	if err := db.QueryRow("SELECT count(*) FROM system WHERE key = ?", key).Scan(&count); err != nil {
		return errors.Wrap(err, "counting system record")
	}

	if count == 0 {
		if _, err := db.Exec("INSERT INTO system (key, value) VALUES (?, ?)", key, val); err != nil {
			return errors.Wrap(err, "inserting system record")
		}
	} else {
		if _, err := db.Exec("UPDATE system SET value = ? WHERE key = ?", val, key); err != nil {
			return errors.Wrap(err, "updating system record")
		}
	}

	return nil
}

// DeleteSystem removes a system configuration record
func DeleteSystem(db Queryable, key string) error {
	if _, err := db.Exec("DELETE FROM system WHERE key = ?", key); err != nil {
		return errors.Wrap(err, "deleting system record")
	}

	return nil
}
