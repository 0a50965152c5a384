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
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrInvalidLogin is an error for invalid credentials for login
var ErrInvalidLogin = errors.New("wrong credentials")

// Kind classifies a request failure
type Kind int

const (
	// KindNetwork means the request never reached or returned from the
	// server. Retryable by user action, never retried automatically.
	KindNetwork Kind = iota
	// KindClient means the server rejected the request (4xx)
	KindClient
	// KindServer means the server failed to process the request (5xx)
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	}

	return "unknown"
}

// Error is a typed failure from the remote API
type Error struct {
	Kind       Kind
	StatusCode int
	// Message is the server-provided message, if any
	Message string
	// ErrField is the server-provided error field, used as a message
	// fallback
	ErrField string
	// Cause is the underlying error for network failures
	Cause error
}

func (e *Error) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("network error: %v", e.Cause)
	}

	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.UserMessage())
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsUnauthorized returns true if the server rejected the credential
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound returns true if the resource does not exist
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict returns true for a version conflict: the update's precondition
// no longer matches the server's current version. The caller must re-fetch
// the latest state before retrying; the conflict is never retried silently.
func (e *Error) IsConflict() bool {
	return e.StatusCode == http.StatusPreconditionFailed || e.StatusCode == http.StatusConflict
}

// IsValidation returns true if the server rejected the submitted fields
func (e *Error) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
}

// UserMessage derives a user-facing message with the precedence
// message field, then error field, then a generic description.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ErrField != "" {
		return e.ErrField
	}

	switch e.Kind {
	case KindNetwork:
		return "could not reach the server. Please check your connection"
	case KindServer:
		return "the server failed to process the request. Please try again later"
	}

	return fmt.Sprintf("the request failed with status %d", e.StatusCode)
}

// errBody is the error payload shape the server responds with
type errBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// newStatusError builds an Error from a non-2xx response body
func newStatusError(statusCode int, body []byte) *Error {
	kind := KindClient
	if statusCode >= 500 {
		kind = KindServer
	}

	e := &Error{Kind: kind, StatusCode: statusCode}

	var decoded errBody
	if err := json.Unmarshal(body, &decoded); err == nil {
		e.Message = decoded.Message
		e.ErrField = decoded.Error
	}

	return e
}

// newNetworkError wraps a transport-level failure, including timeouts
func newNetworkError(cause error) *Error {
	return &Error{Kind: KindNetwork, Cause: cause}
}

// UserMessage derives a user-facing message for any error coming out of
// this package, falling back to the plain error text.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}

	return err.Error()
}
