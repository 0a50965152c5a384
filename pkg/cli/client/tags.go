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
	"net/url"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/context"
)

// Tag is a tag in a response. Deleting a tag detaches it from every note
// that held it; the notes themselves are untouched.
type Tag struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ColorHex    *string `json:"colorHex"`
	Description *string `json:"description"`
	NoteCount   int     `json:"noteCount"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	Version     int     `json:"version"`
}

// GetTags lists tags
func GetTags(ctx context.QuillCtx, params PageParams) (Page[Tag], error) {
	path := "/v1/tags"
	v := url.Values{}
	params.apply(v)
	if qs := v.Encode(); qs != "" {
		path = fmt.Sprintf("%s?%s", path, qs)
	}

	res, err := doAuthorizedReq(ctx, "GET", path, "", nil)
	if err != nil {
		return Page[Tag]{}, errors.Wrap(err, "listing tags")
	}

	var resp Page[Tag]
	if err := decodeResp(res, &resp); err != nil {
		return Page[Tag]{}, err
	}

	return resp, nil
}

// GetTag gets a tag by id
func GetTag(ctx context.QuillCtx, id string) (Tag, error) {
	endpoint := fmt.Sprintf("/v1/tags/%s", id)
	res, err := doAuthorizedReq(ctx, "GET", endpoint, "", nil)
	if err != nil {
		return Tag{}, errors.Wrap(err, "getting the tag")
	}

	var resp Tag
	if err := decodeResp(res, &resp); err != nil {
		return Tag{}, err
	}

	return resp, nil
}

// CreateTagPayload is a payload for creating a tag
type CreateTagPayload struct {
	Name        string  `json:"name"`
	ColorHex    *string `json:"colorHex,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateTag creates a tag in the server
func CreateTag(ctx context.QuillCtx, payload CreateTagPayload) (Tag, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Tag{}, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/v1/tags", string(b), nil)
	if err != nil {
		return Tag{}, errors.Wrap(err, "posting the tag to the server")
	}

	var resp Tag
	if err := decodeResp(res, &resp); err != nil {
		return Tag{}, err
	}

	return resp, nil
}

// UpdateTagPayload is a payload for updating a tag. Version travels as the
// If-Match precondition, not in the body.
type UpdateTagPayload struct {
	Name        string  `json:"name"`
	ColorHex    *string `json:"colorHex"`
	Description *string `json:"description"`
	Version     *int    `json:"-"`
}

// UpdateTag updates a tag in the server, conditionally when a version is
// supplied
func UpdateTag(ctx context.QuillCtx, id string, payload UpdateTagPayload) (Tag, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Tag{}, errors.Wrap(err, "marshaling payload")
	}

	opts := requestOptions{IfMatchVersion: payload.Version}
	endpoint := fmt.Sprintf("/v1/tags/%s", id)
	res, err := doAuthorizedReq(ctx, "PUT", endpoint, string(b), &opts)
	if err != nil {
		return Tag{}, errors.Wrap(err, "putting the tag to the server")
	}

	var resp Tag
	if err := decodeResp(res, &resp); err != nil {
		return Tag{}, err
	}

	return resp, nil
}

// DeleteTag deletes a tag in the server
func DeleteTag(ctx context.QuillCtx, id string) error {
	endpoint := fmt.Sprintf("/v1/tags/%s", id)
	res, err := doAuthorizedReq(ctx, "DELETE", endpoint, "", nil)
	if err != nil {
		return errors.Wrap(err, "deleting the tag in the server")
	}
	res.Body.Close()

	return nil
}
