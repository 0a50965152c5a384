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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSystem(t *testing.T) {
	db := InitTestMemoryDB(t)

	require.NoError(t, UpsertSystem(db, "session_token", "t0k3n"))

	var got string
	require.NoError(t, GetSystem(db, "session_token", &got))
	assert.Equal(t, "t0k3n", got, "value mismatch")

	// upserting an existing key updates it in place
	require.NoError(t, UpsertSystem(db, "session_token", "t0k3n-2"))
	require.NoError(t, GetSystem(db, "session_token", &got))
	assert.Equal(t, "t0k3n-2", got, "value mismatch after update")

	var count int
	MustScan(t, "counting rows", db.QueryRow("SELECT count(*) FROM system WHERE key = ?", "session_token"), &count)
	assert.Equal(t, 1, count, "row count mismatch")
}

func TestGetSystemMissing(t *testing.T) {
	db := InitTestMemoryDB(t)

	var got string
	err := GetSystem(db, "nonexistent", &got)
	assert.Equal(t, sql.ErrNoRows, err, "error mismatch")
}

func TestDeleteSystem(t *testing.T) {
	db := InitTestMemoryDB(t)

	require.NoError(t, UpsertSystem(db, "session_token", "t0k3n"))
	require.NoError(t, DeleteSystem(db, "session_token"))

	var got string
	err := GetSystem(db, "session_token", &got)
	assert.Equal(t, sql.ErrNoRows, err, "error mismatch after delete")

	// deleting a missing key is not an error
	require.NoError(t, DeleteSystem(db, "session_token"))
}
