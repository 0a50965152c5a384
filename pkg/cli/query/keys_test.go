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

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyCanonicalizes(t *testing.T) {
	type params struct {
		NotebookID string   `json:"notebookId,omitempty"`
		TagIDs     []string `json:"tagIds,omitempty"`
		Page       int      `json:"page,omitempty"`
	}

	a := NewKey(KindNotes, "list", params{NotebookID: "nb1", TagIDs: []string{"t1"}, Page: 2})
	b := NewKey(KindNotes, "list", params{NotebookID: "nb1", TagIDs: []string{"t1"}, Page: 2})
	assert.Equal(t, a, b, "equal parameters must produce the same key")

	c := NewKey(KindNotes, "list", params{NotebookID: "nb1", TagIDs: []string{"t1"}, Page: 3})
	assert.NotEqual(t, a, c, "different parameters must produce different keys")

	d := NewKey(KindNotes, "search", params{NotebookID: "nb1", TagIDs: []string{"t1"}, Page: 2})
	assert.NotEqual(t, a, d, "different operations must produce different keys")

	e := NewKey(KindNotebooks, "list", params{NotebookID: "nb1", TagIDs: []string{"t1"}, Page: 2})
	assert.NotEqual(t, a, e, "different kinds must produce different keys")
}

func TestNewKeyNilParams(t *testing.T) {
	a := NewKey(KindUsers, "me", nil)
	b := NewKey(KindUsers, "me", nil)
	assert.Equal(t, a, b, "key mismatch")
	assert.Equal(t, "users/me/", a.String(), "storage form mismatch")
}

func TestKeyString(t *testing.T) {
	key := NewKey(KindNotes, "detail", "n1")
	assert.Equal(t, `notes/detail/"n1"`, key.String(), "storage form mismatch")
}
