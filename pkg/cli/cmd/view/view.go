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

package view

import (
	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/output"
	"github.com/quillnotes/quill/pkg/cli/queries"
	"github.com/spf13/cobra"
)

var example = `
 * View a note
 quill view 3c5b4a6e-...`

// NewCmd returns a new view command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view <note-id>",
		Aliases: []string{"v"},
		Short:   "View a note",
		Example: example,
		RunE:    newRun(ctx),
		Args:    cobra.ExactArgs(1),
	}

	return cmd
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		noteID := args[0]

		key, fetch, opts := queries.NoteDetail(ctx, noteID)
		res := ctx.Queries.Get(key, fetch, opts)
		if res.IsIdle {
			return errors.Errorf("invalid note id %s", noteID)
		}
		if res.IsError {
			return errors.Wrap(res.Err, "getting the note")
		}

		output.NoteDetail(res.Data.(client.NoteDetail))

		return nil
	}
}
