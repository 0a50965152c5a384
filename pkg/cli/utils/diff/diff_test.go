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

package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDo(t *testing.T) {
	diffs := Do("eggs\nmilk\n", "eggs\nbutter\n")

	var inserted, deleted []string
	for _, d := range diffs {
		switch d.Type {
		case DiffInsert:
			inserted = append(inserted, d.Text)
		case DiffDelete:
			deleted = append(deleted, d.Text)
		}
	}

	assert.Equal(t, []string{"butter\n"}, inserted, "inserted mismatch")
	assert.Equal(t, []string{"milk\n"}, deleted, "deleted mismatch")
}

func TestUnified(t *testing.T) {
	got := Unified(Do("eggs\nmilk\n", "eggs\nbutter\n"))

	expected := "  eggs\n- milk\n+ butter\n"
	assert.Equal(t, expected, got, "rendered diff mismatch")
}

func TestUnifiedEqual(t *testing.T) {
	got := Unified(Do("eggs\n", "eggs\n"))
	assert.Equal(t, "  eggs\n", got, "rendered diff mismatch")
}
