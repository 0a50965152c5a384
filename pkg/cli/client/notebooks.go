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

// Notebook is a notebook in a response. NoteCount is denormalized by the
// server; deleting a notebook never deletes the notes that reference it.
type Notebook struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	NoteCount   int     `json:"noteCount"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	Version     int     `json:"version"`
}

// GetNotebooks lists notebooks
func GetNotebooks(ctx context.QuillCtx, params PageParams) (Page[Notebook], error) {
	path := "/v1/notebooks"
	v := url.Values{}
	params.apply(v)
	if qs := v.Encode(); qs != "" {
		path = fmt.Sprintf("%s?%s", path, qs)
	}

	res, err := doAuthorizedReq(ctx, "GET", path, "", nil)
	if err != nil {
		return Page[Notebook]{}, errors.Wrap(err, "listing notebooks")
	}

	var resp Page[Notebook]
	if err := decodeResp(res, &resp); err != nil {
		return Page[Notebook]{}, err
	}

	return resp, nil
}

// GetNotebook gets a notebook by id
func GetNotebook(ctx context.QuillCtx, id string) (Notebook, error) {
	endpoint := fmt.Sprintf("/v1/notebooks/%s", id)
	res, err := doAuthorizedReq(ctx, "GET", endpoint, "", nil)
	if err != nil {
		return Notebook{}, errors.Wrap(err, "getting the notebook")
	}

	var resp Notebook
	if err := decodeResp(res, &resp); err != nil {
		return Notebook{}, err
	}

	return resp, nil
}

// CreateNotebookPayload is a payload for creating a notebook
type CreateNotebookPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CreateNotebook creates a notebook in the server
func CreateNotebook(ctx context.QuillCtx, payload CreateNotebookPayload) (Notebook, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Notebook{}, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/v1/notebooks", string(b), nil)
	if err != nil {
		return Notebook{}, errors.Wrap(err, "posting the notebook to the server")
	}

	var resp Notebook
	if err := decodeResp(res, &resp); err != nil {
		return Notebook{}, err
	}

	return resp, nil
}

// UpdateNotebookPayload is a payload for updating a notebook. Version
// travels as the If-Match precondition, not in the body.
type UpdateNotebookPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Version     *int    `json:"-"`
}

// UpdateNotebook updates a notebook in the server, conditionally when a
// version is supplied
func UpdateNotebook(ctx context.QuillCtx, id string, payload UpdateNotebookPayload) (Notebook, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Notebook{}, errors.Wrap(err, "marshaling payload")
	}

	opts := requestOptions{IfMatchVersion: payload.Version}
	endpoint := fmt.Sprintf("/v1/notebooks/%s", id)
	res, err := doAuthorizedReq(ctx, "PUT", endpoint, string(b), &opts)
	if err != nil {
		return Notebook{}, errors.Wrap(err, "putting the notebook to the server")
	}

	var resp Notebook
	if err := decodeResp(res, &resp); err != nil {
		return Notebook{}, err
	}

	return resp, nil
}

// DeleteNotebook deletes a notebook in the server. Notes referencing the
// notebook survive with the reference cleared.
func DeleteNotebook(ctx context.QuillCtx, id string) error {
	endpoint := fmt.Sprintf("/v1/notebooks/%s", id)
	res, err := doAuthorizedReq(ctx, "DELETE", endpoint, "", nil)
	if err != nil {
		return errors.Wrap(err, "deleting the notebook in the server")
	}
	res.Body.Close()

	return nil
}
