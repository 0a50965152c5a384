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

package database

import (
	"database/sql"
	"testing"
)

// MustScan scans the row onto the destinations and fails the test on error
func MustScan(t *testing.T, message string, row *sql.Row, args ...interface{}) {
	if err := row.Scan(args...); err != nil {
		t.Fatalf("%s: %v", message, err)
	}
}

// MustExec executes the query and fails the test on error
func MustExec(t *testing.T, message string, db *DB, query string, args ...interface{}) sql.Result {
	result, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("%s: %v", message, err)
	}

	return result
}

// InitTestMemoryDB opens an in-memory database for testing
func InitTestMemoryDB(t *testing.T) *DB {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}
