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

// UserSummary is a user in a search response
type UserSummary struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	Enabled   bool     `json:"enabled"`
	Locked    bool     `json:"locked"`
	UpdatedAt string   `json:"updatedAt"`
	Version   int      `json:"version"`
}

// UserProfile is the full profile of the current user
type UserProfile struct {
	ID                    string   `json:"id"`
	Email                 string   `json:"email"`
	Roles                 []string `json:"roles"`
	Enabled               bool     `json:"enabled"`
	Locked                bool     `json:"locked"`
	AccountNonExpired     bool     `json:"accountNonExpired"`
	CredentialsNonExpired bool     `json:"credentialsNonExpired"`
	CreatedAt             string   `json:"createdAt"`
	UpdatedAt             string   `json:"updatedAt"`
	Version               int      `json:"version"`
}

// GetMe gets the profile of the current user
func GetMe(ctx context.QuillCtx) (UserProfile, error) {
	res, err := doAuthorizedReq(ctx, "GET", "/v1/users/me", "", nil)
	if err != nil {
		return UserProfile{}, errors.Wrap(err, "getting the current user")
	}

	var resp UserProfile
	if err := decodeResp(res, &resp); err != nil {
		return UserProfile{}, err
	}

	return resp, nil
}

// SearchUsersPayload is a payload for searching users
type SearchUsersPayload struct {
	Q    string `json:"q,omitempty"`
	Page int    `json:"page,omitempty"`
	Size int    `json:"size,omitempty"`
}

// SearchUsers searches users
func SearchUsers(ctx context.QuillCtx, payload SearchUsersPayload) (Page[UserSummary], error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Page[UserSummary]{}, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/v1/users/search", string(b), nil)
	if err != nil {
		return Page[UserSummary]{}, errors.Wrap(err, "searching users")
	}

	var resp Page[UserSummary]
	if err := decodeResp(res, &resp); err != nil {
		return Page[UserSummary]{}, err
	}

	return resp, nil
}

// ChangePasswordPayload is a payload for changing the password
type ChangePasswordPayload struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword changes the password of the current user. A successful
// change invalidates the credential server-side; the caller must tear the
// session down and re-authenticate.
func ChangePassword(ctx context.QuillCtx, payload ChangePasswordPayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/v1/users/me/change-password", string(b), nil)
	if err != nil {
		return errors.Wrap(err, "changing the password")
	}
	res.Body.Close()

	return nil
}
