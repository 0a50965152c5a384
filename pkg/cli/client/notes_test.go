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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateNoteSendsPrecondition(t *testing.T) {
	var gotIfMatch string
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIfMatch = r.Header.Get("If-Match")
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "n1", "title": "updated", "content": "body", "version": 4}`))
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "t0k3n")

	version := 3
	updated, err := UpdateNote(ctx, "n1", UpdateNotePayload{
		Title:   "updated",
		Content: "body",
		Version: &version,
	})
	require.NoError(t, err)

	assert.Equal(t, "PUT", gotMethod, "method mismatch")
	assert.Equal(t, `"3"`, gotIfMatch, "the version must travel quoted in If-Match")
	assert.Equal(t, 4, updated.Version, "version mismatch")
}

func TestUpdateNoteWithoutVersion(t *testing.T) {
	var gotIfMatch string
	var hadIfMatch bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIfMatch = r.Header.Get("If-Match")
		_, hadIfMatch = r.Header["If-Match"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "n1", "title": "updated", "content": "body", "version": 4}`))
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "t0k3n")

	_, err := UpdateNote(ctx, "n1", UpdateNotePayload{Title: "updated", Content: "body"})
	require.NoError(t, err)

	assert.False(t, hadIfMatch, "an unconditional write must not send If-Match")
	assert.Equal(t, "", gotIfMatch, "an unconditional write must not send If-Match")
}

func TestUpdateNoteConflict(t *testing.T) {
	var requestCount int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		http.Error(w, `{"message": "version mismatch"}`, http.StatusPreconditionFailed)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "t0k3n")

	version := 3
	_, err := UpdateNote(ctx, "n1", UpdateNotePayload{Title: "updated", Content: "body", Version: &version})
	require.Error(t, err)

	var respErr *Error
	require.True(t, errors.As(err, &respErr), "expected a typed error")
	assert.True(t, respErr.IsConflict(), "expected a conflict error")
	assert.Equal(t, 1, requestCount, "a conflict must never be retried")
	assert.Equal(t, "version mismatch", respErr.UserMessage(), "message mismatch")
}

func TestTogglePinNote(t *testing.T) {
	notebookID := "nb1"
	detail := NoteDetail{
		ID:         "n1",
		Title:      "groceries",
		Content:    "eggs, milk",
		Pinned:     false,
		Archived:   true,
		NotebookID: &notebookID,
		Tags:       []NoteTag{{ID: "t1", Name: "errand"}},
		Version:    7,
	}

	var methods []string
	var gotIfMatch string
	var gotPayload UpdateNotePayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)

		switch r.Method {
		case "GET":
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(detail))
		case "PUT":
			gotIfMatch = r.Header.Get("If-Match")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

			updated := detail
			updated.Pinned = gotPayload.Pinned
			updated.Version = detail.Version + 1
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(updated))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "t0k3n")

	updated, err := TogglePinNote(ctx, "n1", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"GET", "PUT"}, methods, "the pin toggle must read before writing")
	assert.Equal(t, `"7"`, gotIfMatch, "the write must be conditional on the fetched version")

	// every field other than pinned must round-trip unchanged
	expectedPayload := UpdateNotePayload{
		Title:      detail.Title,
		Content:    detail.Content,
		NotebookID: detail.NotebookID,
		TagIDs:     []string{"t1"},
		Pinned:     true,
		Archived:   detail.Archived,
	}
	if diff := cmp.Diff(expectedPayload, gotPayload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, updated.Pinned, "updated pinned mismatch")
	assert.Equal(t, 8, updated.Version, "updated version mismatch")
}

func TestNoteListParamsQuery(t *testing.T) {
	pinned := true
	params := NoteListParams{
		PageParams: PageParams{Page: 2, Size: 50},
		NotebookID: "nb1",
		Pinned:     &pinned,
		TagIDs:     []string{"t1", "t2"},
		Sort:       "updatedAt,desc",
	}

	got := params.query()
	assert.Equal(t, "notebookId=nb1&page=2&pinned=true&size=50&sort=updatedAt%2Cdesc&tagIds=t1%2Ct2", got, "query mismatch")
}

func TestDeleteNote(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server.URL, "t0k3n")

	require.NoError(t, DeleteNote(ctx, "n1"))
	assert.Equal(t, "DELETE", gotMethod, "method mismatch")
	assert.Equal(t, "/v1/notes/n1", gotPath, "path mismatch")
}
