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

// Package infra provides operations and definitions for the
// local infrastructure for quill
package infra

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/quillnotes/quill/pkg/cli/config"
	"github.com/quillnotes/quill/pkg/cli/consts"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/quillnotes/quill/pkg/cli/database"
	"github.com/quillnotes/quill/pkg/cli/log"
	"github.com/quillnotes/quill/pkg/cli/query"
	"github.com/quillnotes/quill/pkg/cli/session"
	"github.com/quillnotes/quill/pkg/cli/ui"
	"github.com/quillnotes/quill/pkg/cli/utils"
	"github.com/quillnotes/quill/pkg/clock"
	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/dirs"
)

const (
	// DefaultAPIEndpoint is the default API endpoint used when none is configured
	DefaultAPIEndpoint = "http://localhost:8080/api"
	// envAPIEndpoint overrides the configured API endpoint
	envAPIEndpoint = "QUILL_API_ENDPOINT"
)

// RunEFunc is a function type of quill commands
type RunEFunc func(*cobra.Command, []string) error

func getDBPath(paths context.Paths, customPath string) string {
	if customPath != "" {
		return customPath
	}

	return fmt.Sprintf("%s/%s/%s", paths.Data, consts.QuillDirName, consts.QuillDBFileName)
}

// newBaseCtx creates a minimal context with paths and database connection.
// This base context is used for file and database initialization before
// being enriched with config values by setupCtx.
func newBaseCtx(versionTag, customDBPath string) (context.QuillCtx, error) {
	paths := context.Paths{
		Home:   dirs.Home,
		Config: dirs.ConfigHome,
		Data:   dirs.DataHome,
		Cache:  dirs.CacheHome,
	}

	if err := initDirs(paths); err != nil {
		return context.QuillCtx{}, errors.Wrap(err, "initializing directories")
	}

	dbPath := getDBPath(paths, customDBPath)

	db, err := database.Open(dbPath)
	if err != nil {
		return context.QuillCtx{}, errors.Wrap(err, "connecting to db")
	}

	ctx := context.QuillCtx{
		Paths:   paths,
		Version: versionTag,
		DB:      db,
	}

	return ctx, nil
}

func initDirs(paths context.Paths) error {
	for _, dir := range []string{
		fmt.Sprintf("%s/%s", paths.Config, consts.QuillDirName),
		fmt.Sprintf("%s/%s", paths.Data, consts.QuillDirName),
		paths.Cache,
	} {
		if err := utils.EnsureDir(dir); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}

	return nil
}

// initConfigFile creates a config file if one does not exist
func initConfigFile(ctx context.QuillCtx, apiEndpoint string) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	if apiEndpoint == "" {
		apiEndpoint = DefaultAPIEndpoint
	}

	cf := config.Config{
		Editor:      ui.GetEditorCommand(),
		APIEndpoint: apiEndpoint,
	}

	return config.Write(ctx, cf)
}

// setupCtx enriches the base context with config values and runtime
// collaborators: the session guard, the query cache and the HTTP client.
func setupCtx(ctx context.QuillCtx) (context.QuillCtx, error) {
	cf, err := config.Read(ctx)
	if err != nil {
		return ctx, errors.Wrap(err, "reading config")
	}

	ctx.APIEndpoint = cf.APIEndpoint
	if endpoint := os.Getenv(envAPIEndpoint); endpoint != "" {
		ctx.APIEndpoint = endpoint
	}
	ctx.Editor = cf.Editor
	ctx.Clock = clock.New()
	ctx.HTTPClient = client.NewRateLimitedHTTPClient()
	ctx.Queries = query.NewCache(ctx.Clock)

	guard := session.NewGuard(session.NewDBStore(ctx.DB), ctx.Clock)
	guard.OnSignout(func() {
		// the global redirect-to-sign-in effect: any teardown lands here, once
		log.Warnf("signed out. Run `quill login` to sign in\n")
	})
	ctx.Session = guard

	return ctx, nil
}

// Init initializes the quill environment and returns a new quill context.
// An optional .env file next to the config overrides environment values.
func Init(versionTag, apiEndpoint, dbPath string) (*context.QuillCtx, error) {
	ctx, err := newBaseCtx(versionTag, dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "initializing a context")
	}

	envPath := fmt.Sprintf("%s/%s/%s", ctx.Paths.Config, consts.QuillDirName, consts.EnvFilename)
	if ok, _ := utils.FileExists(envPath); ok {
		if err := godotenv.Load(envPath); err != nil {
			log.Warnf("could not load %s: %v\n", envPath, err)
		}
	}

	if err := initConfigFile(ctx, apiEndpoint); err != nil {
		return nil, errors.Wrap(err, "initializing config file")
	}

	ctx, err = setupCtx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "setting up context")
	}

	return &ctx, nil
}
