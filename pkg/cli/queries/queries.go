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

// Package queries binds the resource services to the query cache. Each
// builder produces the cache key, the fetch function and the lookup
// options for one server operation, so that every consumer of the same
// operation shares one cache entry and one in-flight request.
package queries

import (
	"time"

	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/query"
	"github.com/quillnotes/quill/pkg/cli/search"
	"github.com/quillnotes/quill/pkg/cli/utils"
)

const (
	// ListStaleTime is the freshness window for list lookups
	ListStaleTime = time.Minute
	// SearchStaleTime is the freshness window for search lookups
	SearchStaleTime = 30 * time.Second
)

// NotesList builds the lookup for listing notes
func NotesList(ctx context.QuillCtx, params client.NoteListParams) (query.Key, query.FetchFunc, query.Options) {
	key := query.NewKey(query.KindNotes, "list", params)
	fetch := func() (interface{}, error) {
		return client.GetNotes(ctx, params)
	}

	return key, fetch, query.Options{Enabled: true, StaleTime: ListStaleTime}
}

// NotesActive builds the lookup for listing active notes
func NotesActive(ctx context.QuillCtx, params client.PageParams) (query.Key, query.FetchFunc, query.Options) {
	key := query.NewKey(query.KindNotes, "active", params)
	fetch := func() (interface{}, error) {
		return client.GetActiveNotes(ctx, params)
	}

	return key, fetch, query.Options{Enabled: true, StaleTime: ListStaleTime}
}

// NotesPinned builds the lookup for listing pinned notes
func NotesPinned(ctx context.QuillCtx, params client.PageParams) (query.Key, query.FetchFunc, query.Options) {
	key := query.NewKey(query.KindNotes, "pinned", params)
	fetch := func() (interface{}, error) {
		return client.GetPinnedNotes(ctx, params)
	}

	return key, fetch, query.Options{Enabled: true, StaleTime: ListStaleTime}
}

// NoteDetail builds the lookup for a single note. The lookup is disabled
// when the id is structurally invalid, reporting an idle state instead of
// issuing a request.
func NoteDetail(ctx context.QuillCtx, id string) (query.Key, query.FetchFunc, query.Options) {
	key := noteDetailKey(id)
	fetch := func() (interface{}, error) {
		return client.GetNote(ctx, id)
	}

	return key, fetch, query.Options{Enabled: utils.IsUUID(id), StaleTime: ListStaleTime}
}

func noteDetailKey(id string) query.Key {
	return query.NewKey(query.KindNotes, "detail", id)
}

// NotesSearch builds the lookup for full-text search. The lookup is
// disabled until the query has at least the minimum trimmed length.
func NotesSearch(ctx context.QuillCtx, payload client.SearchNotesPayload) (query.Key, query.FetchFunc, query.Options) {
	key := query.NewKey(query.KindNotes, "search", payload)
	fetch := func() (interface{}, error) {
		return client.SearchNotes(ctx, payload)
	}

	return key, fetch, query.Options{Enabled: search.Executable(payload.Q), StaleTime: SearchStaleTime}
}

// NotebooksList builds the lookup for listing notebooks
func NotebooksList(ctx context.QuillCtx, params client.PageParams) (query.Key, query.FetchFunc, query.Options) {
	key := query.NewKey(query.KindNotebooks, "list", params)
	fetch := func() (interface{}, error) {
		return client.GetNotebooks(ctx, params)
	}

	return key, fetch, query.Options{Enabled: true, StaleTime: ListStaleTime}
}

// NotebookDetail builds the lookup for a single notebook
func NotebookDetail(ctx context.QuillCtx, id string) (query.Key, query.FetchFunc, query.Options) {
	key := query.NewKey(query.KindNotebooks, "detail", id)
	fetch := func() (interface{}, error) {
		return client.GetNotebook(ctx, id)
	}

	return key, fetch, query.Options{Enabled: utils.IsUUID(id), StaleTime: ListStaleTime}
}

// TagsList builds the lookup for listing tags
func TagsList(ctx context.QuillCtx, params client.PageParams) (query.Key, query.FetchFunc, query.Options) {
	key := query.NewKey(query.KindTags, "list", params)
	fetch := func() (interface{}, error) {
		return client.GetTags(ctx, params)
	}

	return key, fetch, query.Options{Enabled: true, StaleTime: ListStaleTime}
}

// TagDetail builds the lookup for a single tag
func TagDetail(ctx context.QuillCtx, id string) (query.Key, query.FetchFunc, query.Options) {
	key := query.NewKey(query.KindTags, "detail", id)
	fetch := func() (interface{}, error) {
		return client.GetTag(ctx, id)
	}

	return key, fetch, query.Options{Enabled: utils.IsUUID(id), StaleTime: ListStaleTime}
}

// UsersMe builds the lookup for the current user
func UsersMe(ctx context.QuillCtx) (query.Key, query.FetchFunc, query.Options) {
	key := query.NewKey(query.KindUsers, "me", nil)
	fetch := func() (interface{}, error) {
		return client.GetMe(ctx)
	}

	return key, fetch, query.Options{Enabled: true, StaleTime: ListStaleTime}
}

// AfterNoteMutation publishes the updated note detail directly and then
// invalidates the notes and tags namespaces. The direct write keeps a
// reader of the detail from seeing the pre-mutation state while the
// refetches run; tags are invalidated because their note counts are
// denormalized.
func AfterNoteMutation(ctx context.QuillCtx, updated client.NoteDetail) {
	ctx.Queries.Set(noteDetailKey(updated.ID), updated)
	ctx.Queries.Invalidate(query.KindNotes)
	ctx.Queries.Invalidate(query.KindTags)
}

// AfterNoteDelete invalidates the namespaces affected by a note deletion
func AfterNoteDelete(ctx context.QuillCtx) {
	ctx.Queries.Invalidate(query.KindNotes)
	ctx.Queries.Invalidate(query.KindTags)
}

// AfterNotebookMutation invalidates the namespaces affected by a notebook
// mutation. Notes are invalidated too: deleting a notebook clears the
// reference on its notes, and renames change the denormalized notebook
// name on note summaries.
func AfterNotebookMutation(ctx context.QuillCtx) {
	ctx.Queries.Invalidate(query.KindNotebooks)
	ctx.Queries.Invalidate(query.KindNotes)
}

// AfterTagMutation invalidates the namespaces affected by a tag mutation
func AfterTagMutation(ctx context.QuillCtx) {
	ctx.Queries.Invalidate(query.KindTags)
	ctx.Queries.Invalidate(query.KindNotes)
}
