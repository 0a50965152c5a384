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

package login

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	var gotPayload client.SigninPayload
	server := testutils.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path, "path mismatch")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		testutils.WriteJSON(t, w, http.StatusOK, client.SigninResponse{
			AccessToken: "t0k3n",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
		})
	}))

	ctx, c := testutils.NewCtx(t, server.URL)

	require.NoError(t, Do(ctx, "alice@example.com", "pass1234"))

	assert.Equal(t, "alice@example.com", gotPayload.Email, "email mismatch")
	assert.Equal(t, "pass1234", gotPayload.Password, "password mismatch")

	assert.True(t, ctx.Session.Authenticated(), "expected an authenticated session")
	assert.Equal(t, "t0k3n", ctx.Session.Token(), "token mismatch")

	// the stored expiry honors the server-provided lifetime
	c.Advance(3601 * time.Second)
	assert.False(t, ctx.Session.Authenticated(), "the session should expire after expiresIn")
}

func TestDoWrongCredentials(t *testing.T) {
	server := testutils.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "bad credentials"}`, http.StatusUnauthorized)
	}))

	ctx, _ := testutils.NewCtx(t, server.URL)

	err := Do(ctx, "alice@example.com", "wrong")
	assert.Equal(t, client.ErrInvalidLogin, err, "error mismatch")
	assert.False(t, ctx.Session.Authenticated(), "no session should be stored")
}
