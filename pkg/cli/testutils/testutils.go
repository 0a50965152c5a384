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

// Package testutils provides shared helpers for tests
package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/query"
	"github.com/quillnotes/quill/pkg/cli/session"
	"github.com/quillnotes/quill/pkg/clock"
)

// NewCtx creates a context for tests pointed at the given API endpoint,
// with an in-memory session store and a mock clock.
func NewCtx(t *testing.T, apiEndpoint string) (context.QuillCtx, *clock.Mock) {
	t.Helper()

	c := clock.NewMock()
	guard := session.NewGuard(session.NewMemStore(), c)

	ctx := context.QuillCtx{
		APIEndpoint: apiEndpoint,
		Version:     "test",
		Session:     guard,
		Queries:     query.NewCache(c),
		Clock:       c,
		HTTPClient:  &http.Client{},
	}

	return ctx, c
}

// NewLoggedInCtx creates a test context with a stored session token
func NewLoggedInCtx(t *testing.T, apiEndpoint, token string) (context.QuillCtx, *clock.Mock) {
	t.Helper()

	ctx, c := NewCtx(t, apiEndpoint)
	if err := ctx.Session.SignIn(token, 0); err != nil {
		t.Fatal(err)
	}

	return ctx, c
}

// NewServer starts a test HTTP server with the given handler and registers
// its teardown
func NewServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

// WriteJSON writes the value as a JSON response
func WriteJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}
