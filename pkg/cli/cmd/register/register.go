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

package register

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
  quill register`

// NewCmd returns a new register command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account on the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		var email, password, passwordConfirm string

		if err := ui.PromptInput("email", &email); err != nil {
			return errors.Wrap(err, "getting email input")
		}
		if email == "" {
			return errors.New("email is empty")
		}

		if err := ui.PromptPassword("password", &password); err != nil {
			return errors.Wrap(err, "getting password input")
		}
		if password == "" {
			return errors.New("password is empty")
		}

		if err := ui.PromptPassword("confirm password", &passwordConfirm); err != nil {
			return errors.Wrap(err, "getting password confirmation")
		}
		if password != passwordConfirm {
			log.Error("passwords do not match\n")
			return nil
		}

		if err := client.Register(ctx, email, password); err != nil {
			log.Errorf("%s\n", client.UserMessage(errors.Cause(err)))
			return nil
		}

		log.Success("account created. Run `quill login` to sign in\n")

		return nil
	}
}
