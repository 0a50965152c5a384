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

package ls

import (
	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/output"
	"github.com/quillnotes/quill/pkg/cli/queries"
	"github.com/quillnotes/quill/pkg/cli/query"
	"github.com/spf13/cobra"
)

var example = `
 * List all notes
 quill ls

 * List notes in a notebook
 quill ls --notebook 5f8a1f...

 * List pinned notes
 quill ls --pinned`

var (
	notebookFlag string
	tagFlags     []string
	pinnedFlag   bool
	archivedFlag bool
	activeFlag   bool
	pageFlag     int
	sizeFlag     int
)

// NewCmd returns a new ls command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"l", "notes"},
		Short:   "List notes",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVar(&notebookFlag, "notebook", "", "filter by notebook id")
	f.StringSliceVar(&tagFlags, "tag", nil, "filter by tag id (repeatable)")
	f.BoolVar(&pinnedFlag, "pinned", false, "list only the pinned notes")
	f.BoolVar(&archivedFlag, "archived", false, "list only the archived notes")
	f.BoolVar(&activeFlag, "active", false, "list only the active notes")
	f.IntVar(&pageFlag, "page", 0, "the page to fetch")
	f.IntVar(&sizeFlag, "size", 0, "the page size")

	return cmd
}

func buildLookup(ctx context.QuillCtx) (query.Key, query.FetchFunc, query.Options) {
	pageParams := client.PageParams{Page: pageFlag, Size: sizeFlag}

	// the pinned and active subsets have dedicated endpoints; anything
	// else goes through the filterable list
	if pinnedFlag && notebookFlag == "" && len(tagFlags) == 0 {
		return queries.NotesPinned(ctx, pageParams)
	}
	if activeFlag {
		return queries.NotesActive(ctx, pageParams)
	}

	params := client.NoteListParams{
		PageParams: pageParams,
		NotebookID: notebookFlag,
		TagIDs:     tagFlags,
	}
	if pinnedFlag {
		pinned := true
		params.Pinned = &pinned
	}
	if archivedFlag {
		archived := true
		params.Archived = &archived
	}

	return queries.NotesList(ctx, params)
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		key, fetch, opts := buildLookup(ctx)
		res := ctx.Queries.Get(key, fetch, opts)
		if res.IsError {
			return errors.Wrap(res.Err, "listing notes")
		}

		page := res.Data.(client.Page[client.NoteSummary])
		output.NoteSummaries(page)

		return nil
	}
}
