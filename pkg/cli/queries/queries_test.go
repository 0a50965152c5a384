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

package queries

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNoteID = "3c5b4a6e-8f2d-4c3b-9e1a-5d6f7a8b9c0d"

func TestNoteDetailDisabledForInvalidID(t *testing.T) {
	ctx, _ := testutils.NewCtx(t, "http://localhost:0")

	key, fetch, opts := NoteDetail(ctx, "not-a-uuid")
	assert.False(t, opts.Enabled, "an invalid id must disable the lookup")

	res := ctx.Queries.Get(key, fetch, opts)
	assert.True(t, res.IsIdle, "expected an idle result")
}

func TestNotesSearchDisabledForShortQuery(t *testing.T) {
	ctx, _ := testutils.NewCtx(t, "http://localhost:0")

	_, _, opts := NotesSearch(ctx, client.SearchNotesPayload{Q: "ab"})
	assert.False(t, opts.Enabled, "a short query must disable the lookup")

	_, _, opts = NotesSearch(ctx, client.SearchNotesPayload{Q: "abc"})
	assert.True(t, opts.Enabled, "a long enough query must enable the lookup")
}

func TestListLookupsShareEntries(t *testing.T) {
	var listCalls int32
	server := testutils.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		testutils.WriteJSON(t, w, http.StatusOK, client.Page[client.NoteSummary]{
			Content:       []client.NoteSummary{{ID: testNoteID, Title: "groceries"}},
			TotalElements: 1,
		})
	}))

	ctx, _ := testutils.NewLoggedInCtx(t, server.URL, "t0k3n")

	key, fetch, opts := NotesList(ctx, client.NoteListParams{})
	res := ctx.Queries.Get(key, fetch, opts)
	require.False(t, res.IsError, "unexpected error: %v", res.Err)

	// the same lookup from another consumer hits the cache
	key2, fetch2, opts2 := NotesList(ctx, client.NoteListParams{})
	assert.Equal(t, key, key2, "equal lookups must share a key")

	res = ctx.Queries.Get(key2, fetch2, opts2)
	require.False(t, res.IsError, "unexpected error: %v", res.Err)

	page := res.Data.(client.Page[client.NoteSummary])
	assert.Equal(t, "groceries", page.Content[0].Title, "title mismatch")
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls), "the second lookup must be served from the cache")
}

func TestAfterNoteMutation(t *testing.T) {
	var listCalls, detailCalls int32
	listFetched := make(chan struct{}, 10)
	server := testutils.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/notes":
			atomic.AddInt32(&listCalls, 1)
			defer func() { listFetched <- struct{}{} }()
			testutils.WriteJSON(t, w, http.StatusOK, client.Page[client.NoteSummary]{})
		case "/v1/notes/" + testNoteID:
			// the detail entry is invalidated too, so a background refetch
			// of the published detail is allowed
			atomic.AddInt32(&detailCalls, 1)
			testutils.WriteJSON(t, w, http.StatusOK, client.NoteDetail{ID: testNoteID, Title: "updated", Version: 5})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	ctx, _ := testutils.NewLoggedInCtx(t, server.URL, "t0k3n")

	key, fetch, opts := NotesList(ctx, client.NoteListParams{})
	ctx.Queries.Get(key, fetch, opts)
	<-listFetched
	require.Equal(t, int32(1), atomic.LoadInt32(&listCalls), "list call count mismatch")

	updated := client.NoteDetail{ID: testNoteID, Title: "updated", Content: "body", Version: 5}
	AfterNoteMutation(ctx, updated)

	// the updated detail is readable immediately, without waiting on a fetch
	detailKey, detailFetch, detailOpts := NoteDetail(ctx, testNoteID)
	res := ctx.Queries.Get(detailKey, detailFetch, detailOpts)
	require.False(t, res.IsError, "unexpected error: %v", res.Err)
	got := res.Data.(client.NoteDetail)
	assert.Equal(t, "updated", got.Title, "the mutation result must be published directly")

	// the list entry was marked stale; the next read triggers a refetch
	res = ctx.Queries.Get(key, fetch, opts)
	require.False(t, res.IsError, "unexpected error: %v", res.Err)
	<-listFetched
	assert.Equal(t, int32(2), atomic.LoadInt32(&listCalls), "the list must refetch after a mutation")
}

func TestAfterNotebookMutationInvalidatesNotes(t *testing.T) {
	var notebookCalls, noteCalls int32
	fetched := make(chan struct{}, 10)
	server := testutils.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() { fetched <- struct{}{} }()
		switch r.URL.Path {
		case "/v1/notebooks":
			atomic.AddInt32(&notebookCalls, 1)
			testutils.WriteJSON(t, w, http.StatusOK, client.Page[client.Notebook]{})
		case "/v1/notes":
			atomic.AddInt32(&noteCalls, 1)
			testutils.WriteJSON(t, w, http.StatusOK, client.Page[client.NoteSummary]{})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	ctx, _ := testutils.NewLoggedInCtx(t, server.URL, "t0k3n")

	nbKey, nbFetch, nbOpts := NotebooksList(ctx, client.PageParams{})
	ctx.Queries.Get(nbKey, nbFetch, nbOpts)
	<-fetched

	nKey, nFetch, nOpts := NotesList(ctx, client.NoteListParams{})
	ctx.Queries.Get(nKey, nFetch, nOpts)
	<-fetched

	AfterNotebookMutation(ctx)

	// both namespaces refetch on the next read
	ctx.Queries.Get(nbKey, nbFetch, nbOpts)
	<-fetched
	ctx.Queries.Get(nKey, nFetch, nOpts)
	<-fetched

	assert.Equal(t, int32(2), atomic.LoadInt32(&notebookCalls), "notebook call count mismatch")
	assert.Equal(t, int32(2), atomic.LoadInt32(&noteCalls), "note call count mismatch")
}
