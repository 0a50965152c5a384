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

package find

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/log"
	"github.com/quillnotes/quill/pkg/cli/output"
	"github.com/quillnotes/quill/pkg/cli/queries"
	"github.com/quillnotes/quill/pkg/cli/search"
	"github.com/spf13/cobra"
)

var example = `
 * Search notes
 quill find "grocery"

 * Search within a notebook
 quill find "grocery" --notebook 5f8a1f...

 * Search interactively, refining the query line by line
 quill find --interactive`

var (
	notebookFlag    string
	tagFlags        []string
	pinnedFlag      bool
	pageFlag        int
	sizeFlag        int
	interactiveFlag bool
)

// NewCmd returns a new find command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "find [query]",
		Aliases: []string{"f", "search"},
		Short:   "Search notes",
		Example: example,
		RunE:    newRun(ctx),
		Args:    cobra.MaximumNArgs(1),
	}

	f := cmd.Flags()
	f.StringVar(&notebookFlag, "notebook", "", "search within a notebook")
	f.StringSliceVar(&tagFlags, "tag", nil, "search notes with a tag (repeatable)")
	f.BoolVar(&pinnedFlag, "pinned", false, "search only the pinned notes")
	f.IntVar(&pageFlag, "page", 0, "the page to fetch")
	f.IntVar(&sizeFlag, "size", 0, "the page size")
	f.BoolVarP(&interactiveFlag, "interactive", "i", false, "read queries from stdin and search as they settle")

	return cmd
}

func buildPayload(q string) client.SearchNotesPayload {
	payload := client.SearchNotesPayload{
		Q:      q,
		TagIDs: tagFlags,
		Page:   pageFlag,
		Size:   sizeFlag,
	}
	if notebookFlag != "" {
		payload.NotebookID = &notebookFlag
	}
	if pinnedFlag {
		pinned := true
		payload.Pinned = &pinned
	}

	return payload
}

func runSearch(ctx context.QuillCtx, q string) error {
	key, fetch, opts := queries.NotesSearch(ctx, buildPayload(q))
	res := ctx.Queries.Get(key, fetch, opts)
	if res.IsIdle {
		return errors.Errorf("the query must be at least %d characters", search.MinQueryLength)
	}
	if res.IsError {
		return errors.Wrap(res.Err, "searching notes")
	}

	output.NoteSummaries(res.Data.(client.Page[client.NoteSummary]))

	return nil
}

// runInteractive reads queries from stdin. Each line feeds the settle gate;
// a search runs only once the input stops changing and is long enough to
// execute. Repeating a query hits the cache instead of the server while the
// result is fresh.
func runInteractive(ctx context.QuillCtx) error {
	gate := search.NewGate(search.DefaultSettle)
	defer gate.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)

		for q := range gate.Queries() {
			if err := runSearch(ctx, q); err != nil {
				log.Errorf("%s\n", err)
			}
			log.Plainf("\n(find) ")
		}
	}()

	log.Plain("type a query and press enter. An empty line exits.\n(find) ")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}

		gate.Input(line)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading input")
	}

	gate.Stop()
	<-done

	return nil
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if interactiveFlag {
			return runInteractive(ctx)
		}

		if len(args) == 0 {
			return errors.New("provide a query or pass --interactive")
		}

		return runSearch(ctx, args[0])
	}
}
