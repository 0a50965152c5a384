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

package passwd

import (
	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/log"
	"github.com/quillnotes/quill/pkg/cli/ui"
	"github.com/spf13/cobra"
)

var example = `
  quill passwd`

// NewCmd returns a new passwd command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "passwd",
		Short:   "Change the password",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		var oldPassword, newPassword, newPasswordConfirm string

		if err := ui.PromptPassword("current password", &oldPassword); err != nil {
			return errors.Wrap(err, "getting current password")
		}
		if err := ui.PromptPassword("new password", &newPassword); err != nil {
			return errors.Wrap(err, "getting new password")
		}
		if err := ui.PromptPassword("confirm new password", &newPasswordConfirm); err != nil {
			return errors.Wrap(err, "getting new password confirmation")
		}
		if newPassword != newPasswordConfirm {
			log.Error("passwords do not match\n")
			return nil
		}

		err := client.ChangePassword(ctx, client.ChangePasswordPayload{
			OldPassword: oldPassword,
			NewPassword: newPassword,
		})
		if err != nil {
			log.Errorf("%s\n", client.UserMessage(errors.Cause(err)))
			return nil
		}

		// the old credential is no longer valid; force a re-login
		if _, err := ctx.Session.SignOut(); err != nil {
			return errors.Wrap(err, "clearing session")
		}

		log.Success("password changed. Run `quill login` to sign in again\n")

		return nil
	}
}
