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

package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/infra"
	"github.com/quillnotes/quill/pkg/cli/log"

	// commands
	"github.com/quillnotes/quill/pkg/cli/cmd/add"
	"github.com/quillnotes/quill/pkg/cli/cmd/edit"
	"github.com/quillnotes/quill/pkg/cli/cmd/find"
	"github.com/quillnotes/quill/pkg/cli/cmd/login"
	"github.com/quillnotes/quill/pkg/cli/cmd/logout"
	"github.com/quillnotes/quill/pkg/cli/cmd/ls"
	"github.com/quillnotes/quill/pkg/cli/cmd/notebooks"
	"github.com/quillnotes/quill/pkg/cli/cmd/passwd"
	"github.com/quillnotes/quill/pkg/cli/cmd/pin"
	"github.com/quillnotes/quill/pkg/cli/cmd/register"
	"github.com/quillnotes/quill/pkg/cli/cmd/rm"
	"github.com/quillnotes/quill/pkg/cli/cmd/root"
	"github.com/quillnotes/quill/pkg/cli/cmd/tags"
	"github.com/quillnotes/quill/pkg/cli/cmd/version"
	"github.com/quillnotes/quill/pkg/cli/cmd/view"
	"github.com/quillnotes/quill/pkg/cli/cmd/whoami"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

// parseDBPath extracts --dbPath flag value from command line arguments
// regardless of where it appears (before or after subcommand).
// Returns empty string if not found.
func parseDBPath(args []string) string {
	for i, arg := range args {
		// Handle --dbPath=value
		if strings.HasPrefix(arg, "--dbPath=") {
			return strings.TrimPrefix(arg, "--dbPath=")
		}
		// Handle --dbPath value
		if arg == "--dbPath" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func main() {
	// Parse flags early to get --dbPath before initializing the database.
	// We need to manually parse --dbPath because it can appear after the
	// subcommand and root.ParseFlags only parses flags before the subcommand.
	dbPath := parseDBPath(os.Args[1:])

	ctx, err := infra.Init(versionTag, apiEndpoint, dbPath)
	if err != nil {
		panic(errors.Wrap(err, "initializing context"))
	}
	defer ctx.DB.Close()

	root.Register(login.NewCmd(*ctx))
	root.Register(logout.NewCmd(*ctx))
	root.Register(register.NewCmd(*ctx))
	root.Register(whoami.NewCmd(*ctx))
	root.Register(passwd.NewCmd(*ctx))
	root.Register(ls.NewCmd(*ctx))
	root.Register(find.NewCmd(*ctx))
	root.Register(view.NewCmd(*ctx))
	root.Register(add.NewCmd(*ctx))
	root.Register(edit.NewCmd(*ctx))
	root.Register(rm.NewCmd(*ctx))
	root.Register(pin.NewCmd(*ctx))
	root.Register(pin.NewUnpinCmd(*ctx))
	root.Register(notebooks.NewCmd(*ctx))
	root.Register(tags.NewCmd(*ctx))
	root.Register(version.NewCmd(*ctx))

	if err := root.Execute(); err != nil {
		log.Errorf("%s\n", client.UserMessage(err))
		os.Exit(1)
	}
}
