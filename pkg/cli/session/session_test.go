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

package session

import (
	"testing"
	"time"

	"github.com/quillnotes/quill/pkg/cli/database"
	"github.com/quillnotes/quill/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardSignInAndOut(t *testing.T) {
	c := clock.NewMock()
	guard := NewGuard(NewMemStore(), c)

	assert.False(t, guard.Authenticated(), "a new guard should not be authenticated")
	assert.Equal(t, "", guard.Token(), "token mismatch")

	require.NoError(t, guard.SignIn("t0k3n", 0))
	assert.True(t, guard.Authenticated(), "expected an authenticated guard")
	assert.Equal(t, "t0k3n", guard.Token(), "token mismatch")

	changed, err := guard.SignOut()
	require.NoError(t, err)
	assert.True(t, changed, "the first signout should report a transition")
	assert.False(t, guard.Authenticated(), "expected an unauthenticated guard")
}

func TestGuardSignOutIdempotent(t *testing.T) {
	c := clock.NewMock()
	guard := NewGuard(NewMemStore(), c)

	var hookCount int
	guard.OnSignout(func() {
		hookCount++
	})

	require.NoError(t, guard.SignIn("t0k3n", 0))

	changed, err := guard.SignOut()
	require.NoError(t, err)
	assert.True(t, changed, "the first signout should report a transition")

	changed, err = guard.SignOut()
	require.NoError(t, err)
	assert.False(t, changed, "a redundant signout should not report a transition")

	assert.Equal(t, 1, hookCount, "the hook must fire only on an actual transition")
}

func TestGuardHandleUnauthorized(t *testing.T) {
	c := clock.NewMock()
	guard := NewGuard(NewMemStore(), c)

	var hookCount int
	guard.OnSignout(func() {
		hookCount++
	})

	require.NoError(t, guard.SignIn("t0k3n", 0))

	// simulate multiple concurrent requests each seeing a 401
	guard.HandleUnauthorized()
	guard.HandleUnauthorized()
	guard.HandleUnauthorized()

	assert.False(t, guard.Authenticated(), "expected an unauthenticated guard")
	assert.Equal(t, 1, hookCount, "hook count mismatch")
}

func TestGuardExpiry(t *testing.T) {
	c := clock.NewMock()
	guard := NewGuard(NewMemStore(), c)

	expiresAt := c.Now().Add(time.Hour).Unix()
	require.NoError(t, guard.SignIn("t0k3n", expiresAt))

	assert.Equal(t, "t0k3n", guard.Token(), "token mismatch before expiry")

	c.Advance(2 * time.Hour)

	assert.Equal(t, "", guard.Token(), "an expired token must not be usable")
	assert.False(t, guard.Authenticated(), "expected an unauthenticated guard")
}

func TestDBStore(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	store := NewDBStore(db)

	_, err := store.Get()
	assert.Equal(t, ErrNotLoggedIn, err, "error mismatch")

	require.NoError(t, store.Save(Session{Token: "t0k3n", ExpiresAt: 1257894000}))

	sess, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "t0k3n", sess.Token, "token mismatch")
	assert.Equal(t, int64(1257894000), sess.ExpiresAt, "expiry mismatch")

	// saving again overwrites
	require.NoError(t, store.Save(Session{Token: "t0k3n-2", ExpiresAt: 1257897600}))
	sess, err = store.Get()
	require.NoError(t, err)
	assert.Equal(t, "t0k3n-2", sess.Token, "token mismatch")

	require.NoError(t, store.Clear())
	_, err = store.Get()
	assert.Equal(t, ErrNotLoggedIn, err, "error mismatch after clear")

	// clearing an empty store is not an error
	require.NoError(t, store.Clear())
}
