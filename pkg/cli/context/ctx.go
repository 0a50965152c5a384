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

// Package context defines quill context
package context

import (
	"net/http"

	"github.com/quillnotes/quill/pkg/cli/database"
	"github.com/quillnotes/quill/pkg/cli/query"
	"github.com/quillnotes/quill/pkg/cli/session"
	"github.com/quillnotes/quill/pkg/clock"
)

// Paths contain directory definitions
type Paths struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// QuillCtx is a context holding the information of the current runtime
type QuillCtx struct {
	Paths       Paths
	APIEndpoint string
	Version     string
	DB          *database.DB
	Session     *session.Guard
	Queries     *query.Cache
	Editor      string
	Clock       clock.Clock
	HTTPClient  *http.Client
}

// Redact replaces private information from the context with a set of
// placeholder values.
func Redact(ctx QuillCtx) QuillCtx {
	ctx.Session = nil

	return ctx
}
