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

package notebooks

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/log"
	"github.com/quillnotes/quill/pkg/cli/output"
	"github.com/quillnotes/quill/pkg/cli/queries"
	"github.com/quillnotes/quill/pkg/cli/ui"
	"github.com/quillnotes/quill/pkg/cli/validate"
	"github.com/spf13/cobra"
)

var example = `
 * List notebooks
 quill notebooks ls

 * Add a notebook
 quill notebooks add work -d "work notes"

 * Rename a notebook
 quill notebooks edit 5f8a1f... -n projects

 * Remove a notebook
 quill notebooks rm 5f8a1f...`

var (
	descriptionFlag string
	nameFlag        string
	yesFlag         bool
	pageFlag        int
	sizeFlag        int
)

// NewCmd returns a new notebooks command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notebooks",
		Aliases: []string{"notebook", "nb"},
		Short:   "Manage notebooks",
		Example: example,
		RunE:    newLsRun(ctx),
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List notebooks",
		RunE:  newLsRun(ctx),
	}
	lf := ls.Flags()
	lf.IntVar(&pageFlag, "page", 0, "the page to fetch")
	lf.IntVar(&sizeFlag, "size", 0, "the page size")

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a notebook",
		RunE:  newAddRun(ctx),
		Args:  cobra.ExactArgs(1),
	}
	add.Flags().StringVarP(&descriptionFlag, "description", "d", "", "a description of the notebook")

	edit := &cobra.Command{
		Use:   "edit <notebook-id>",
		Short: "Edit a notebook",
		RunE:  newEditRun(ctx),
		Args:  cobra.ExactArgs(1),
	}
	ef := edit.Flags()
	ef.StringVarP(&nameFlag, "name", "n", "", "a new name for the notebook")
	ef.StringVarP(&descriptionFlag, "description", "d", "", "a new description for the notebook")

	rm := &cobra.Command{
		Use:   "rm <notebook-id>",
		Short: "Remove a notebook",
		RunE:  newRmRun(ctx),
		Args:  cobra.ExactArgs(1),
	}
	rm.Flags().BoolVarP(&yesFlag, "yes", "y", false, "remove without asking for confirmation")

	cmd.AddCommand(ls, add, edit, rm)

	return cmd
}

func newLsRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		key, fetch, opts := queries.NotebooksList(ctx, client.PageParams{Page: pageFlag, Size: sizeFlag})
		res := ctx.Queries.Get(key, fetch, opts)
		if res.IsError {
			return errors.Wrap(res.Err, "listing notebooks")
		}

		output.Notebooks(res.Data.(client.Page[client.Notebook]))

		return nil
	}
}

func newAddRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validate.Name(name); err != nil {
			return err
		}

		payload := client.CreateNotebookPayload{Name: name}
		if descriptionFlag != "" {
			payload.Description = &descriptionFlag
		}

		created, err := client.CreateNotebook(ctx, payload)
		if err != nil {
			return errors.Wrap(err, "creating the notebook")
		}

		queries.AfterNotebookMutation(ctx)
		log.Successf("added a notebook %s\n", created.ID)

		return nil
	}
}

func newEditRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		notebookID := args[0]

		current, err := client.GetNotebook(ctx, notebookID)
		if err != nil {
			return errors.Wrap(err, "getting the notebook")
		}

		payload := client.UpdateNotebookPayload{
			Name:        current.Name,
			Description: current.Description,
		}
		version := current.Version
		payload.Version = &version

		if nameFlag != "" {
			if err := validate.Name(nameFlag); err != nil {
				return err
			}
			payload.Name = nameFlag
		}
		if cmd.Flags().Changed("description") {
			payload.Description = &descriptionFlag
		}

		updated, err := client.UpdateNotebook(ctx, notebookID, payload)
		if err != nil {
			var respErr *client.Error
			if errors.As(err, &respErr) && respErr.IsConflict() {
				return errors.Wrap(err, "the notebook has a newer version on the server; re-run the edit")
			}
			return errors.Wrap(err, "updating the notebook")
		}

		queries.AfterNotebookMutation(ctx)
		log.Successf("edited the notebook %s\n", updated.ID)

		return nil
	}
}

func newRmRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		notebookID := args[0]

		current, err := client.GetNotebook(ctx, notebookID)
		if err != nil {
			return errors.Wrap(err, "getting the notebook")
		}

		if !yesFlag {
			question := fmt.Sprintf("remove the notebook %q? Its notes are kept without a notebook.", current.Name)
			ok, err := ui.Confirm(question, false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Warnf("aborted by user\n")
				return nil
			}
		}

		if err := client.DeleteNotebook(ctx, notebookID); err != nil {
			return errors.Wrap(err, "deleting the notebook")
		}

		queries.AfterNotebookMutation(ctx)
		log.Successf("removed the notebook %s\n", notebookID)

		return nil
	}
}
