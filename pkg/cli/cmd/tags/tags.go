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

package tags

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
 * List tags
 quill tags ls

 * Add a tag with a color
 quill tags add urgent --color "#ff0000"

 * Rename a tag
 quill tags edit 9c41e1... -n important

 * Remove a tag
 quill tags rm 9c41e1...`

var (
	colorFlag       string
	descriptionFlag string
	nameFlag        string
	yesFlag         bool
	pageFlag        int
	sizeFlag        int
)

// NewCmd returns a new tags command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
		Example: example,
		RunE:    newLsRun(ctx),
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List tags",
		RunE:  newLsRun(ctx),
	}
	lf := ls.Flags()
	lf.IntVar(&pageFlag, "page", 0, "the page to fetch")
	lf.IntVar(&sizeFlag, "size", 0, "the page size")

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tag",
		RunE:  newAddRun(ctx),
		Args:  cobra.ExactArgs(1),
	}
	af := add.Flags()
	af.StringVar(&colorFlag, "color", "", "a hex color for the tag, e.g. #ff0000")
	af.StringVarP(&descriptionFlag, "description", "d", "", "a description of the tag")

	edit := &cobra.Command{
		Use:   "edit <tag-id>",
		Short: "Edit a tag",
		RunE:  newEditRun(ctx),
		Args:  cobra.ExactArgs(1),
	}
	ef := edit.Flags()
	ef.StringVarP(&nameFlag, "name", "n", "", "a new name for the tag")
	ef.StringVar(&colorFlag, "color", "", "a new hex color for the tag")
	ef.StringVarP(&descriptionFlag, "description", "d", "", "a new description for the tag")

	rm := &cobra.Command{
		Use:   "rm <tag-id>",
		Short: "Remove a tag",
		RunE:  newRmRun(ctx),
		Args:  cobra.ExactArgs(1),
	}
	rm.Flags().BoolVarP(&yesFlag, "yes", "y", false, "remove without asking for confirmation")

	cmd.AddCommand(ls, add, edit, rm)

	return cmd
}

func newLsRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		key, fetch, opts := queries.TagsList(ctx, client.PageParams{Page: pageFlag, Size: sizeFlag})
		res := ctx.Queries.Get(key, fetch, opts)
		if res.IsError {
			return errors.Wrap(res.Err, "listing tags")
		}

		output.Tags(res.Data.(client.Page[client.Tag]))

		return nil
	}
}

func newAddRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validate.Name(name); err != nil {
			return err
		}

		payload := client.CreateTagPayload{Name: name}
		if colorFlag != "" {
			if err := validate.ColorHex(colorFlag); err != nil {
				return err
			}
			payload.ColorHex = &colorFlag
		}
		if descriptionFlag != "" {
			payload.Description = &descriptionFlag
		}

		created, err := client.CreateTag(ctx, payload)
		if err != nil {
			return errors.Wrap(err, "creating the tag")
		}

		queries.AfterTagMutation(ctx)
		log.Successf("added a tag %s\n", created.ID)

		return nil
	}
}

func newEditRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		tagID := args[0]

		current, err := client.GetTag(ctx, tagID)
		if err != nil {
			return errors.Wrap(err, "getting the tag")
		}

		payload := client.UpdateTagPayload{
			Name:        current.Name,
			ColorHex:    current.ColorHex,
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
		if cmd.Flags().Changed("color") {
			if err := validate.ColorHex(colorFlag); err != nil {
				return err
			}
			payload.ColorHex = &colorFlag
		}
		if cmd.Flags().Changed("description") {
			payload.Description = &descriptionFlag
		}

		updated, err := client.UpdateTag(ctx, tagID, payload)
		if err != nil {
			var respErr *client.Error
			if errors.As(err, &respErr) && respErr.IsConflict() {
				return errors.Wrap(err, "the tag has a newer version on the server; re-run the edit")
			}
			return errors.Wrap(err, "updating the tag")
		}

		queries.AfterTagMutation(ctx)
		log.Successf("edited the tag %s\n", updated.ID)

		return nil
	}
}

func newRmRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		tagID := args[0]

		current, err := client.GetTag(ctx, tagID)
		if err != nil {
			return errors.Wrap(err, "getting the tag")
		}

		if !yesFlag {
			question := fmt.Sprintf("remove the tag %q? It is detached from its notes.", current.Name)
			ok, err := ui.Confirm(question, false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Warnf("aborted by user\n")
				return nil
			}
		}

		if err := client.DeleteTag(ctx, tagID); err != nil {
			return errors.Wrap(err, "deleting the tag")
		}

		queries.AfterTagMutation(ctx)
		log.Successf("removed the tag %s\n", tagID)

		return nil
	}
}
