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

package login

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
  quill login`

var apiEndpointFlag string

// NewCmd returns a new login command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Login to the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVar(&apiEndpointFlag, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")

	return cmd
}

// Do performs login with the given credentials and stores the session
func Do(ctx context.QuillCtx, email, password string) error {
	resp, err := client.Signin(ctx, email, password)
	if err != nil {
		return err
	}

	var expiresAt int64
	if resp.ExpiresIn > 0 {
		expiresAt = ctx.Clock.Now().Unix() + resp.ExpiresIn
	}

	if err := ctx.Session.SignIn(resp.AccessToken, expiresAt); err != nil {
		return errors.Wrap(err, "storing session")
	}

	return nil
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if apiEndpointFlag != "" {
			ctx.APIEndpoint = apiEndpointFlag
		}

		log.Plain("welcome to quill\n\n")

		var email, password string
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

		err := Do(ctx, email, password)
		if err == client.ErrInvalidLogin {
			log.Error("wrong credentials\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging in")
		}

		log.Success("logged in\n")

		return nil
	}
}
