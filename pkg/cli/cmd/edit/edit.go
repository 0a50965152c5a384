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

package edit

import (
	"os"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/log"
	"github.com/quillnotes/quill/pkg/cli/queries"
	"github.com/quillnotes/quill/pkg/cli/ui"
	"github.com/quillnotes/quill/pkg/cli/utils/diff"
	"github.com/quillnotes/quill/pkg/cli/validate"
	"github.com/spf13/cobra"
)

var example = `
 * Open an editor to edit the content of a note
 quill edit 3c5b4a6e-...

 * Update the content directly from the command line
 quill edit 3c5b4a6e-... -c "eggs, milk, butter"

 * Rename a note
 quill edit 3c5b4a6e-... -t "grocery list"`

var (
	titleFlag    string
	contentFlag  string
	notebookFlag string
	tagFlags     []string
	archivedFlag bool
	restoreFlag  bool
)

// NewCmd returns a new edit command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <note-id>",
		Short:   "Edit a note",
		Aliases: []string{"e"},
		Example: example,
		RunE:    newRun(ctx),
		Args:    cobra.ExactArgs(1),
	}

	f := cmd.Flags()
	f.StringVarP(&titleFlag, "title", "t", "", "a new title for the note")
	f.StringVarP(&contentFlag, "content", "c", "", "new content for the note")
	f.StringVar(&notebookFlag, "notebook", "", "the id of the notebook to move to")
	f.StringSliceVar(&tagFlags, "tag", nil, "the id of a tag to attach (replaces existing tags)")
	f.BoolVar(&archivedFlag, "archive", false, "archive the note")
	f.BoolVar(&restoreFlag, "restore", false, "restore the note from the archive")

	return cmd
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		noteID := args[0]

		detail, err := client.GetNote(ctx, noteID)
		if err != nil {
			return errors.Wrap(err, "getting the note")
		}

		payload := client.UpdateNotePayload{
			Title:      detail.Title,
			Content:    detail.Content,
			NotebookID: detail.NotebookID,
			TagIDs:     detail.TagIDs(),
			Pinned:     detail.Pinned,
			Archived:   detail.Archived,
		}
		version := detail.Version
		payload.Version = &version

		if titleFlag != "" {
			if err := validate.NoteTitle(titleFlag); err != nil {
				return err
			}
			payload.Title = titleFlag
		}
		if cmd.Flags().Changed("notebook") {
			if notebookFlag == "" {
				payload.NotebookID = nil
			} else {
				payload.NotebookID = &notebookFlag
			}
		}
		if cmd.Flags().Changed("tag") {
			payload.TagIDs = tagFlags
		}
		if archivedFlag {
			payload.Archived = true
		}
		if restoreFlag {
			payload.Archived = false
		}

		var fpath string
		if contentFlag != "" {
			payload.Content = contentFlag
		} else if titleFlag == "" && !cmd.Flags().Changed("notebook") && !cmd.Flags().Changed("tag") && !archivedFlag && !restoreFlag {
			// no flag given; edit the content in an editor
			fpath, err = ui.GetTmpContentPath(ctx)
			if err != nil {
				return errors.Wrap(err, "getting the temporary content file path")
			}
			if err := os.WriteFile(fpath, []byte(detail.Content), 0644); err != nil {
				return errors.Wrap(err, "preparing the temporary content file")
			}

			content, err := ui.GetEditorInput(ctx, fpath)
			if err != nil {
				return errors.Wrap(err, "getting editor input")
			}
			payload.Content = content
		}

		updated, err := client.UpdateNote(ctx, noteID, payload)
		if err != nil {
			if conflictErr := surfaceConflict(ctx, err, noteID, payload.Content); conflictErr != nil {
				if fpath != "" {
					log.Errorf("preserved the input at %s\n", fpath)
				}
				return conflictErr
			}
			if fpath != "" {
				log.Errorf("preserved the input at %s\n", fpath)
			}
			return errors.Wrap(err, "updating the note")
		}

		if fpath != "" {
			if err := os.Remove(fpath); err != nil {
				return errors.Wrap(err, "removing the temporary content file")
			}
		}

		queries.AfterNoteMutation(ctx, updated)
		log.Successf("edited the note %s\n", updated.ID)

		return nil
	}
}

// surfaceConflict renders a diff between the attempted content and the
// current server content when the update was rejected with a version
// conflict. It returns nil when err is not a conflict.
func surfaceConflict(ctx context.QuillCtx, err error, noteID, attempted string) error {
	var respErr *client.Error
	if !errors.As(err, &respErr) || !respErr.IsConflict() {
		return nil
	}

	log.Error("the note changed on the server since it was read\n")

	latest, ferr := client.GetNote(ctx, noteID)
	if ferr != nil {
		return errors.Wrap(err, "the note has a newer version on the server")
	}

	log.Plainf("%s", diff.Unified(diff.Do(latest.Content, attempted)))
	log.Plain("\nre-run the edit against the latest version\n")

	// keep later reads from serving the outdated detail
	queries.AfterNoteMutation(ctx, latest)

	return errors.Wrap(err, "the note has a newer version on the server")
}
