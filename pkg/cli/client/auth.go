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

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/context"
)

// SigninPayload is a payload for /auth/login
type SigninPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninResponse is a response from /auth/login
type SigninResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Signin requests a session token. The request carries no credential and a
// 401 here means wrong login, not an expired session, so it never tears
// the session down.
func Signin(ctx context.QuillCtx, email, password string) (SigninResponse, error) {
	payload := SigninPayload{
		Email:    email,
		Password: password,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return SigninResponse{}, errors.Wrap(err, "marshaling payload")
	}

	opts := requestOptions{NoAuth: true}
	res, err := doReq(ctx, "POST", "/auth/login", string(b), &opts)
	if err != nil {
		var httpErr *Error
		if errors.As(err, &httpErr) && httpErr.IsUnauthorized() {
			return SigninResponse{}, ErrInvalidLogin
		}
		return SigninResponse{}, errors.Wrap(err, "making http request")
	}

	var resp SigninResponse
	if err := decodeResp(res, &resp); err != nil {
		return SigninResponse{}, err
	}

	return resp, nil
}

// RegisterPayload is a payload for /v1/auth/register
type RegisterPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account
func Register(ctx context.QuillCtx, email, password string) error {
	payload := RegisterPayload{
		Email:    email,
		Password: password,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling payload")
	}

	opts := requestOptions{NoAuth: true}
	res, err := doReq(ctx, "POST", "/v1/auth/register", string(b), &opts)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}
	res.Body.Close()

	return nil
}

// Signout deletes the session on the server side
func Signout(ctx context.QuillCtx) error {
	res, err := doAuthorizedReq(ctx, "POST", "/auth/logout", "", nil)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}
	res.Body.Close()

	return nil
}
