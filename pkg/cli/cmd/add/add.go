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

package add

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/log"
	"github.com/quillnotes/quill/pkg/cli/queries"
	"github.com/quillnotes/quill/pkg/cli/ui"
	"github.com/quillnotes/quill/pkg/cli/validate"
	"github.com/spf13/cobra"
)

var example = `
 * Open an editor to write content
 quill add "shopping list"

 * Write content directly from the command line
 quill add "shopping list" -c "eggs, milk"

 * Add a note to a notebook
 quill add "shopping list" -c "eggs, milk" --notebook 5f8a1f...`

var (
	contentFlag  string
	notebookFlag string
	tagFlags     []string
	pinnedFlag   bool
)

// NewCmd returns a new add command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <title>",
		Short:   "Add a new note",
		Aliases: []string{"a", "n", "new"},
		Example: example,
		RunE:    newRun(ctx),
		Args:    cobra.ExactArgs(1),
	}

	f := cmd.Flags()
	f.StringVarP(&contentFlag, "content", "c", "", "the content of the note")
	f.StringVar(&notebookFlag, "notebook", "", "the id of the notebook to add to")
	f.StringSliceVar(&tagFlags, "tag", nil, "the id of a tag to attach (repeatable)")
	f.BoolVar(&pinnedFlag, "pinned", false, "pin the note")

	return cmd
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		title := args[0]
		if err := validate.NoteTitle(title); err != nil {
			return err
		}

		content := contentFlag
		if content == "" {
			fpath, err := ui.GetTmpContentPath(ctx)
			if err != nil {
				return errors.Wrap(err, "getting the temporary content file path")
			}

			content, err = ui.GetEditorInput(ctx, fpath)
			if err != nil {
				return errors.Wrap(err, "getting editor input")
			}

			if strings.TrimSpace(content) == "" {
				return errors.New("empty content")
			}

			if err := write(ctx, title, content); err != nil {
				// leave the tmp file in place so the draft survives
				log.Errorf("preserved the input at %s\n", fpath)
				return err
			}

			if err := os.Remove(fpath); err != nil {
				return errors.Wrap(err, "removing the temporary content file")
			}

			return nil
		}

		return write(ctx, title, content)
	}
}

func write(ctx context.QuillCtx, title, content string) error {
	payload := client.CreateNotePayload{
		Title:   title,
		Content: content,
		TagIDs:  tagFlags,
		Pinned:  pinnedFlag,
	}
	if notebookFlag != "" {
		payload.NotebookID = &notebookFlag
	}

	created, err := client.CreateNote(ctx, payload)
	if err != nil {
		return errors.Wrap(err, "creating the note")
	}

	queries.AfterNoteMutation(ctx, created)
	log.Successf("added a note %s\n", created.ID)

	return nil
}
