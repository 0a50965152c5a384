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
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/context"
)

// NoteTag is a tag reference embedded in a note response
type NoteTag struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ColorHex *string `json:"colorHex"`
}

// NoteSummary is a note in a list or search response
type NoteSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        *string   `json:"content"`
	ContentPreview *string   `json:"contentPreview"`
	Pinned         bool      `json:"pinned"`
	Archived       bool      `json:"archived"`
	NotebookID     *string   `json:"notebookId"`
	NotebookName   *string   `json:"notebookName"`
	Tags           []NoteTag `json:"tags"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
	Version        int       `json:"version"`
}

// NoteDetail is the full note in a detail response
type NoteDetail struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ContentPreview *string   `json:"contentPreview"`
	Pinned         bool      `json:"pinned"`
	Archived       bool      `json:"archived"`
	NotebookID     *string   `json:"notebookId"`
	NotebookName   *string   `json:"notebookName"`
	Tags           []NoteTag `json:"tags"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
	Version        int       `json:"version"`
}

// TagIDs returns the ids of the tags attached to the note
func (n NoteDetail) TagIDs() []string {
	ret := make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		ret = append(ret, t.ID)
	}

	return ret
}

// NoteListParams are the filters for listing notes
type NoteListParams struct {
	PageParams
	NotebookID string
	Pinned     *bool
	Archived   *bool
	TagIDs     []string
	Sort       string
}

func (p NoteListParams) query() string {
	v := url.Values{}
	p.PageParams.apply(v)

	if p.NotebookID != "" {
		v.Set("notebookId", p.NotebookID)
	}
	if p.Pinned != nil {
		v.Set("pinned", strconv.FormatBool(*p.Pinned))
	}
	if p.Archived != nil {
		v.Set("archived", strconv.FormatBool(*p.Archived))
	}
	if len(p.TagIDs) > 0 {
		v.Set("tagIds", strings.Join(p.TagIDs, ","))
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}

	return v.Encode()
}

// GetNotes lists notes with optional filters
func GetNotes(ctx context.QuillCtx, params NoteListParams) (Page[NoteSummary], error) {
	path := "/v1/notes"
	if qs := params.query(); qs != "" {
		path = fmt.Sprintf("%s?%s", path, qs)
	}

	res, err := doAuthorizedReq(ctx, "GET", path, "", nil)
	if err != nil {
		return Page[NoteSummary]{}, errors.Wrap(err, "listing notes")
	}

	var resp Page[NoteSummary]
	if err := decodeResp(res, &resp); err != nil {
		return Page[NoteSummary]{}, err
	}

	return resp, nil
}

// SearchNotesPayload is a payload for the full-text note search
type SearchNotesPayload struct {
	Q           string   `json:"q,omitempty"`
	NotebookID  *string  `json:"notebookId,omitempty"`
	Pinned      *bool    `json:"pinned,omitempty"`
	Archived    *bool    `json:"archived,omitempty"`
	TagIDs      []string `json:"tagIds,omitempty"`
	UpdatedFrom string   `json:"updatedFrom,omitempty"`
	UpdatedTo   string   `json:"updatedTo,omitempty"`
	Page        int      `json:"page,omitempty"`
	Size        int      `json:"size,omitempty"`
	Sort        string   `json:"sort,omitempty"`
}

// SearchNotes runs a full-text search with optional filters
func SearchNotes(ctx context.QuillCtx, payload SearchNotesPayload) (Page[NoteSummary], error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Page[NoteSummary]{}, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/v1/notes/search", string(b), nil)
	if err != nil {
		return Page[NoteSummary]{}, errors.Wrap(err, "searching notes")
	}

	var resp Page[NoteSummary]
	if err := decodeResp(res, &resp); err != nil {
		return Page[NoteSummary]{}, err
	}

	return resp, nil
}

// GetActiveNotes lists notes that are neither archived nor deleted
func GetActiveNotes(ctx context.QuillCtx, params PageParams) (Page[NoteSummary], error) {
	return getNoteSubset(ctx, "/v1/notes/active", params)
}

// GetPinnedNotes lists pinned notes
func GetPinnedNotes(ctx context.QuillCtx, params PageParams) (Page[NoteSummary], error) {
	return getNoteSubset(ctx, "/v1/notes/pinned", params)
}

func getNoteSubset(ctx context.QuillCtx, path string, params PageParams) (Page[NoteSummary], error) {
	v := url.Values{}
	params.apply(v)
	if qs := v.Encode(); qs != "" {
		path = fmt.Sprintf("%s?%s", path, qs)
	}

	res, err := doAuthorizedReq(ctx, "GET", path, "", nil)
	if err != nil {
		return Page[NoteSummary]{}, errors.Wrap(err, "listing notes")
	}

	var resp Page[NoteSummary]
	if err := decodeResp(res, &resp); err != nil {
		return Page[NoteSummary]{}, err
	}

	return resp, nil
}

// GetNote gets a note by id
func GetNote(ctx context.QuillCtx, id string) (NoteDetail, error) {
	endpoint := fmt.Sprintf("/v1/notes/%s", id)
	res, err := doAuthorizedReq(ctx, "GET", endpoint, "", nil)
	if err != nil {
		return NoteDetail{}, errors.Wrap(err, "getting the note")
	}

	var resp NoteDetail
	if err := decodeResp(res, &resp); err != nil {
		return NoteDetail{}, err
	}

	return resp, nil
}

// CreateNotePayload is a payload for creating a note
type CreateNotePayload struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	NotebookID *string  `json:"notebookId,omitempty"`
	TagIDs     []string `json:"tagIds,omitempty"`
	Pinned     bool     `json:"pinned"`
	Archived   bool     `json:"archived"`
}

// CreateNote creates a note in the server
func CreateNote(ctx context.QuillCtx, payload CreateNotePayload) (NoteDetail, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return NoteDetail{}, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/v1/notes", string(b), nil)
	if err != nil {
		return NoteDetail{}, errors.Wrap(err, "posting the note to the server")
	}

	var resp NoteDetail
	if err := decodeResp(res, &resp); err != nil {
		return NoteDetail{}, err
	}

	return resp, nil
}

// UpdateNotePayload is a payload for updating a note. Version is not part
// of the request body; it travels as the If-Match precondition.
type UpdateNotePayload struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	NotebookID *string  `json:"notebookId"`
	TagIDs     []string `json:"tagIds"`
	Pinned     bool     `json:"pinned"`
	Archived   bool     `json:"archived"`
	Version    *int     `json:"-"`
}

// UpdateNote updates a note in the server. When the payload carries a
// version, the write is conditional: a version mismatch comes back as a
// conflict error and the caller must surface it, not retry.
func UpdateNote(ctx context.QuillCtx, id string, payload UpdateNotePayload) (NoteDetail, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return NoteDetail{}, errors.Wrap(err, "marshaling payload")
	}

	opts := requestOptions{IfMatchVersion: payload.Version}
	endpoint := fmt.Sprintf("/v1/notes/%s", id)
	res, err := doAuthorizedReq(ctx, "PUT", endpoint, string(b), &opts)
	if err != nil {
		return NoteDetail{}, errors.Wrap(err, "putting the note to the server")
	}

	var resp NoteDetail
	if err := decodeResp(res, &resp); err != nil {
		return NoteDetail{}, err
	}

	return resp, nil
}

// DeleteNote removes a note in the server
func DeleteNote(ctx context.QuillCtx, id string) error {
	endpoint := fmt.Sprintf("/v1/notes/%s", id)
	res, err := doAuthorizedReq(ctx, "DELETE", endpoint, "", nil)
	if err != nil {
		return errors.Wrap(err, "deleting the note in the server")
	}
	res.Body.Close()

	return nil
}

// TogglePinNote flips the pinned flag of a note. It reads the current
// detail first and writes back every field unchanged except pinned, using
// the fetched version as the precondition, so concurrent edits to other
// fields are not clobbered. An edit landing between the read and the write
// still surfaces as a version conflict; that narrow race is accepted since
// the remote contract has no partial update.
func TogglePinNote(ctx context.QuillCtx, id string, pinned bool) (NoteDetail, error) {
	detail, err := GetNote(ctx, id)
	if err != nil {
		return NoteDetail{}, errors.Wrap(err, "fetching the current note")
	}

	version := detail.Version
	updated, err := UpdateNote(ctx, id, UpdateNotePayload{
		Title:      detail.Title,
		Content:    detail.Content,
		NotebookID: detail.NotebookID,
		TagIDs:     detail.TagIDs(),
		Pinned:     pinned,
		Archived:   detail.Archived,
		Version:    &version,
	})
	if err != nil {
		return NoteDetail{}, errors.Wrap(err, "updating the pinned flag")
	}

	return updated, nil
}
