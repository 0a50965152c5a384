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
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrNameEmpty is an error for an empty name
var ErrNameEmpty = errors.New("The name is empty")

// ErrNameMultiline is an error for a name that has linebreaks
var ErrNameMultiline = errors.New("The name contains multiple lines")

// ErrTitleEmpty is an error for an empty note title
var ErrTitleEmpty = errors.New("The title is empty")

// ErrColorHexInvalid is an error for a malformed hex color
var ErrColorHexInvalid = errors.New("The color must be a hex triplet or sextet, e.g. #fff or #0a1b2c")

// hex triplet or sextet with a leading hash
var regexColorHex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Name validates a notebook or tag name
func Name(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if strings.Contains(name, "\n") {
		return ErrNameMultiline
	}

	return nil
}

// NoteTitle validates a note title
func NoteTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleEmpty
	}

	return nil
}

// ColorHex validates an optional tag color. An empty value is allowed.
func ColorHex(color string) error {
	if color == "" {
		return nil
	}
	if !regexColorHex.MatchString(color) {
		return ErrColorHexInvalid
	}

	return nil
}
