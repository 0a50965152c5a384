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

// Package session manages the credential for the active session. The token
// is held behind a Store so that commands and the transport never touch the
// underlying storage directly, and tests can substitute an in-memory store.
package session

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/consts"
	"github.com/quillnotes/quill/pkg/cli/database"
	"github.com/quillnotes/quill/pkg/clock"
)

// ErrNotLoggedIn is an error for operations that require a session
// when no session is present
var ErrNotLoggedIn = errors.New("not logged in")

// Session is the credential for the active session
type Session struct {
	Token     string
	ExpiresAt int64
}

// Store persists the session credential for the lifetime of the process
// and across invocations
type Store interface {
	Get() (Session, error)
	Save(s Session) error
	Clear() error
}

// DBStore is a Store backed by the local database
type DBStore struct {
	db *database.DB
}

// NewDBStore creates a store backed by the given database
func NewDBStore(db *database.DB) *DBStore {
	return &DBStore{db: db}
}

// Get reads the stored session
func (s *DBStore) Get() (Session, error) {
	var ret Session

	err := database.GetSystem(s.db, consts.SystemSessionKey, &ret.Token)
	if errors.Cause(err) == sql.ErrNoRows {
		return ret, ErrNotLoggedIn
	} else if err != nil {
		return ret, errors.Wrap(err, "getting session token")
	}

	err = database.GetSystem(s.db, consts.SystemSessionKeyExpiry, &ret.ExpiresAt)
	if err != nil && errors.Cause(err) != sql.ErrNoRows {
		return ret, errors.Wrap(err, "getting session token expiry")
	}

	return ret, nil
}

// Save stores the session
func (s *DBStore) Save(sess Session) error {
	if err := database.UpsertSystem(s.db, consts.SystemSessionKey, sess.Token); err != nil {
		return errors.Wrap(err, "saving session token")
	}
	if err := database.UpsertSystem(s.db, consts.SystemSessionKeyExpiry, sess.ExpiresAt); err != nil {
		return errors.Wrap(err, "saving session token expiry")
	}

	return nil
}

// Clear removes the stored session
func (s *DBStore) Clear() error {
	if err := database.DeleteSystem(s.db, consts.SystemSessionKey); err != nil {
		return errors.Wrap(err, "deleting session token")
	}
	if err := database.DeleteSystem(s.db, consts.SystemSessionKeyExpiry); err != nil {
		return errors.Wrap(err, "deleting session token expiry")
	}

	return nil
}

// MemStore is an in-memory Store for tests
type MemStore struct {
	mu   sync.Mutex
	sess *Session
}

// NewMemStore creates an in-memory store
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Get reads the stored session
func (s *MemStore) Get() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return Session{}, ErrNotLoggedIn
	}

	return *s.sess, nil
}

// Save stores the session
func (s *MemStore) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = &sess
	return nil
}

// Clear removes the stored session
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = nil
	return nil
}

// Guard tracks whether the client is authenticated and funnels every
// session teardown through one place. Teardown happens on logout, on a 401
// from any authenticated call, and after a password change.
type Guard struct {
	mu        sync.Mutex
	store     Store
	clock     clock.Clock
	onSignout func()
}

// NewGuard creates a guard over the given store
func NewGuard(store Store, c clock.Clock) *Guard {
	return &Guard{store: store, clock: c}
}

// OnSignout registers a hook invoked when the session transitions from
// authenticated to unauthenticated. It is not invoked for redundant
// teardowns, keeping repeated 401 handling idempotent.
func (g *Guard) OnSignout(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onSignout = fn
}

// SignIn stores the session credential
func (g *Guard) SignIn(token string, expiresAt int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Save(Session{Token: token, ExpiresAt: expiresAt}); err != nil {
		return errors.Wrap(err, "saving session")
	}

	return nil
}

// SignOut clears the session credential. It returns true if a session was
// actually cleared. The signout hook fires only on an actual transition.
func (g *Guard) SignOut() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.store.Get()
	if err == ErrNotLoggedIn {
		return false, nil
	} else if err != nil {
		return false, errors.Wrap(err, "reading session")
	}

	if err := g.store.Clear(); err != nil {
		return false, errors.Wrap(err, "clearing session")
	}

	if g.onSignout != nil {
		g.onSignout()
	}

	return true, nil
}

// Token returns the current session token, or an empty string if there is
// no session or the session has expired.
func (g *Guard) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess, err := g.store.Get()
	if err != nil {
		return ""
	}

	if sess.ExpiresAt != 0 && g.clock.Now().Unix() > sess.ExpiresAt {
		return ""
	}

	return sess.Token
}

// Authenticated returns true if a usable session token is present
func (g *Guard) Authenticated() bool {
	return g.Token() != ""
}

// HandleUnauthorized tears the session down in response to a 401 from the
// server. Errors are swallowed; a failed teardown must not mask the
// original unauthorized error seen by the caller.
func (g *Guard) HandleUnauthorized() {
	_, err := g.SignOut()
	if err != nil {
		// nothing the caller can do about it at this point
		return
	}
}
