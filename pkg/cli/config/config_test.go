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

package config

import (
	"fmt"
	"os"
	"testing"

	"github.com/quillnotes/quill/pkg/cli/consts"
	"github.com/quillnotes/quill/pkg/cli/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCtx(t *testing.T) context.QuillCtx {
	t.Helper()

	configDir := t.TempDir()
	require.NoError(t, os.MkdirAll(fmt.Sprintf("%s/%s", configDir, consts.QuillDirName), 0755))

	return context.QuillCtx{
		Paths: context.Paths{Config: configDir},
	}
}

func TestReadWrite(t *testing.T) {
	ctx := newTestCtx(t)

	cf := Config{Editor: "vim", APIEndpoint: "https://api.example.com"}
	require.NoError(t, Write(ctx, cf))

	got, err := Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, cf, got, "config mismatch")
}

func TestReadMissing(t *testing.T) {
	ctx := newTestCtx(t)

	_, err := Read(ctx)
	require.Error(t, err, "reading a missing config should fail")
}
