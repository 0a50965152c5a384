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

package logout

import (
	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/log"
	"github.com/quillnotes/quill/pkg/cli/session"
	"github.com/spf13/cobra"
)

// ErrNotLoggedIn is an error for logging out when not logged in
var ErrNotLoggedIn = errors.New("not logged in")

var example = `
  quill logout`

var apiEndpointFlag string

// NewCmd returns a new logout command
func NewCmd(ctx context.QuillCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logout",
		Short:   "Logout from the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVar(&apiEndpointFlag, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")

	return cmd
}

// Do performs logout
func Do(ctx context.QuillCtx) error {
	if !ctx.Session.Authenticated() {
		return ErrNotLoggedIn
	}

	err := client.Signout(ctx)
	if err != nil {
		// a rejected credential means the session is already gone on the
		// server; clearing locally is still the right outcome
		var httpErr *client.Error
		if !errors.As(errors.Cause(err), &httpErr) || !httpErr.IsUnauthorized() {
			return errors.Wrap(err, "requesting logout")
		}
	}

	if _, err := ctx.Session.SignOut(); err != nil && err != session.ErrNotLoggedIn {
		return errors.Wrap(err, "clearing session")
	}

	return nil
}

func newRun(ctx context.QuillCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if apiEndpointFlag != "" {
			ctx.APIEndpoint = apiEndpointFlag
		}

		err := Do(ctx)
		if err == ErrNotLoggedIn {
			log.Error("not logged in\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging out")
		}

		log.Success("logged out\n")

		return nil
	}
}
