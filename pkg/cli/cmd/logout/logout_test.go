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

package logout

import (
	"net/http"
	"testing"

	"github.com/quillnotes/quill/pkg/cli/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	var gotPath string
	server := testutils.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	ctx, _ := testutils.NewLoggedInCtx(t, server.URL, "t0k3n")

	require.NoError(t, Do(ctx))

	assert.Equal(t, "/auth/logout", gotPath, "path mismatch")
	assert.False(t, ctx.Session.Authenticated(), "the session should be cleared")
}

func TestDoNotLoggedIn(t *testing.T) {
	ctx, _ := testutils.NewCtx(t, "http://localhost:0")

	err := Do(ctx)
	assert.Equal(t, ErrNotLoggedIn, err, "error mismatch")
}

func TestDoServerSessionAlreadyGone(t *testing.T) {
	server := testutils.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "token expired"}`, http.StatusUnauthorized)
	}))

	ctx, _ := testutils.NewLoggedInCtx(t, server.URL, "expired-t0k3n")

	// the server rejecting the credential still results in a clean local
	// logout
	require.NoError(t, Do(ctx))
	assert.False(t, ctx.Session.Authenticated(), "the session should be cleared")
}
