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

package client

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/session"
	"github.com/quillnotes/quill/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCtx(t *testing.T, apiEndpoint, token string) context.QuillCtx {
	t.Helper()

	c := clock.NewMock()
	guard := session.NewGuard(session.NewMemStore(), c)
	if token != "" {
		require.NoError(t, guard.SignIn(token, 0))
	}

	return context.QuillCtx{
		APIEndpoint: apiEndpoint,
		Version:     "test",
		Session:     guard,
		Clock:       c,
		HTTPClient:  &http.Client{},
	}
}

func TestBearerAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email": "alice@example.com"}`))
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "t0k3n")

	_, err := GetMe(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Bearer t0k3n", gotAuth, "authorization header mismatch")
}

func TestNoBearerOnSignin(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessToken": "t0k3n", "tokenType": "Bearer", "expiresIn": 3600}`))
	}))
	defer server.Close()

	// even with a session present, the login endpoint must not carry it
	ctx := newTestCtx(t, server.URL, "old-t0k3n")

	resp, err := Signin(ctx, "alice@example.com", "pass1234")
	require.NoError(t, err)

	assert.Equal(t, "", gotAuth, "signin must not carry a credential")
	assert.Equal(t, "t0k3n", resp.AccessToken, "access token mismatch")
}

func TestSigninWrongCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "bad credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "")

	_, err := Signin(ctx, "alice@example.com", "wrong")
	assert.Equal(t, ErrInvalidLogin, err, "error mismatch")
}

func TestUnauthorizedTeardown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "token expired"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "expired-t0k3n")

	var hookCount int32
	ctx.Session.OnSignout(func() {
		atomic.AddInt32(&hookCount, 1)
	})

	_, err := GetMe(ctx)
	require.Error(t, err)

	var respErr *Error
	require.True(t, errors.As(err, &respErr), "expected a typed error")
	assert.True(t, respErr.IsUnauthorized(), "expected an unauthorized error")

	assert.False(t, ctx.Session.Authenticated(), "session should be torn down")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hookCount), "hook count mismatch")

	// the credential is gone, so the next authorized call fails locally
	// without reaching the server, and the hook does not fire again
	_, err = GetMe(ctx)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hookCount), "teardown should be idempotent")
}

func TestSigninUnauthorizedKeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "bad credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "existing-t0k3n")

	_, err := Signin(ctx, "alice@example.com", "wrong")
	require.Error(t, err)

	assert.True(t, ctx.Session.Authenticated(), "a failed login must not tear down the existing session")
}

func TestErrorKinds(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		ctx := newTestCtx(t, server.URL, "t0k3n")

		_, err := GetMe(ctx)
		var respErr *Error
		require.True(t, errors.As(err, &respErr), "expected a typed error")
		assert.Equal(t, KindServer, respErr.Kind, "kind mismatch")
		assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode, "status mismatch")
	})

	t.Run("client error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{}`, http.StatusNotFound)
		}))
		defer server.Close()

		ctx := newTestCtx(t, server.URL, "t0k3n")

		_, err := GetMe(ctx)
		var respErr *Error
		require.True(t, errors.As(err, &respErr), "expected a typed error")
		assert.Equal(t, KindClient, respErr.Kind, "kind mismatch")
		assert.True(t, respErr.IsNotFound(), "expected a not found error")
	})

	t.Run("network error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		ctx := newTestCtx(t, server.URL, "t0k3n")

		_, err := GetMe(ctx)
		var respErr *Error
		require.True(t, errors.As(err, &respErr), "expected a typed error")
		assert.Equal(t, KindNetwork, respErr.Kind, "kind mismatch")
		assert.NotNil(t, respErr.Cause, "network error should carry a cause")
	})
}

func TestUserMessagePrecedence(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "message field wins",
			err:      &Error{Kind: KindClient, StatusCode: 400, Message: "title is required", ErrField: "bad request"},
			expected: "title is required",
		},
		{
			name:     "error field as fallback",
			err:      &Error{Kind: KindClient, StatusCode: 400, ErrField: "bad request"},
			expected: "bad request",
		},
		{
			name:     "generic for bare client error",
			err:      &Error{Kind: KindClient, StatusCode: 404},
			expected: "the request failed with status 404",
		},
		{
			name:     "generic for server error",
			err:      &Error{Kind: KindServer, StatusCode: 502},
			expected: "the server failed to process the request. Please try again later",
		},
		{
			name:     "generic for network error",
			err:      &Error{Kind: KindNetwork, Cause: errors.New("connection refused")},
			expected: "could not reach the server. Please check your connection",
		},
		{
			name:     "wrapped error unwraps",
			err:      errors.Wrap(&Error{Kind: KindClient, StatusCode: 400, Message: "title is required"}, "updating the note"),
			expected: "title is required",
		},
		{
			name:     "plain error passes through",
			err:      errors.New("something else"),
			expected: "something else",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, UserMessage(tc.err), "message mismatch")
		})
	}
}

func TestAuthorizedReqRequiresToken(t *testing.T) {
	var reached bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "")

	_, err := GetMe(ctx)
	require.Error(t, err)
	assert.False(t, reached, "the request must not reach the server without a token")
}

func TestExpiredTokenNotSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	c := clock.NewMock()
	guard := session.NewGuard(session.NewMemStore(), c)
	require.NoError(t, guard.SignIn("t0k3n", c.Now().Unix()+60))

	ctx := context.QuillCtx{
		APIEndpoint: server.URL,
		Version:     "test",
		Session:     guard,
		Clock:       c,
		HTTPClient:  &http.Client{},
	}

	c.Advance(61 * time.Second)

	_, err := GetMe(ctx)
	require.Error(t, err, "an expired session must behave like no session")
}
