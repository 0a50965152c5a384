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

package rm

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/log"
	"github.com/quillnotes/quill/pkg/cli/queries"
	"github.com/quillnotes/quill/pkg/cli/ui"
	"github.com/spf13/cobra"
)

var example = `
 * Remove a note
 quill rm 3c5b4a6e-...

 * Skip confirmation
 quill rm 3c5b4a6e-... --yes`

var yesFlag bool

// NewCmd returns a new rm command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <note-id>",
		Short:   "Remove a note",
		Aliases: []string{"d", "delete", "remove"},
		Example: example,
		RunE:    newRun(ctx),
		Args:    cobra.ExactArgs(1),
	}

	f := cmd.Flags()
	f.BoolVarP(&yesFlag, "yes", "y", false, "remove without asking for confirmation")

	return cmd
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		noteID := args[0]

		detail, err := client.GetNote(ctx, noteID)
		if err != nil {
			return errors.Wrap(err, "getting the note")
		}

		if !yesFlag {
			ok, err := ui.Confirm(fmt.Sprintf("remove the note %q?", detail.Title), false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Warnf("aborted by user\n")
				return nil
			}
		}

		if err := client.DeleteNote(ctx, noteID); err != nil {
			return errors.Wrap(err, "deleting the note")
		}

		queries.AfterNoteDelete(ctx)
		log.Successf("removed the note %s\n", noteID)

		return nil
	}
}
