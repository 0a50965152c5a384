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

package pin

import (
	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/log"
	"github.com/quillnotes/quill/pkg/cli/queries"
	"github.com/spf13/cobra"
)

// NewCmd returns a new pin command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin <note-id>",
		Short: "Pin a note",
		RunE:  newRun(ctx, true),
		Args:  cobra.ExactArgs(1),
	}

	return cmd
}

// NewUnpinCmd returns a new unpin command
func NewUnpinCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpin <note-id>",
		Short: "Unpin a note",
		RunE:  newRun(ctx, false),
		Args:  cobra.ExactArgs(1),
	}

	return cmd
}

func newRun(ctx context.QuillCtx, pinned bool) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		noteID := args[0]

		updated, err := client.TogglePinNote(ctx, noteID, pinned)
		if err != nil {
			return errors.Wrap(err, "toggling the pin")
		}

		queries.AfterNoteMutation(ctx, updated)

		if updated.Pinned {
			log.Successf("pinned the note %s\n", updated.ID)
		} else {
			log.Successf("unpinned the note %s\n", updated.ID)
		}

		return nil
	}
}
