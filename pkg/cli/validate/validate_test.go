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

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.NoError(t, Name("work"), "a plain name should pass")
	assert.Equal(t, ErrNameEmpty, Name(""), "error mismatch")
	assert.Equal(t, ErrNameMultiline, Name("work\nnotes"), "error mismatch")
}

func TestNoteTitle(t *testing.T) {
	assert.NoError(t, NoteTitle("grocery list"), "a plain title should pass")
	assert.Equal(t, ErrTitleEmpty, NoteTitle(""), "error mismatch")
	assert.Equal(t, ErrTitleEmpty, NoteTitle("   "), "whitespace-only title should fail")
}

func TestColorHex(t *testing.T) {
	assert.NoError(t, ColorHex(""), "an empty color is allowed")
	assert.NoError(t, ColorHex("#fff"), "a hex triplet should pass")
	assert.NoError(t, ColorHex("#0a1B2c"), "a hex sextet should pass")

	assert.Equal(t, ErrColorHexInvalid, ColorHex("fff"), "a missing hash should fail")
	assert.Equal(t, ErrColorHexInvalid, ColorHex("#ffff"), "a wrong length should fail")
	assert.Equal(t, ErrColorHexInvalid, ColorHex("#gggggg"), "non-hex digits should fail")
}
