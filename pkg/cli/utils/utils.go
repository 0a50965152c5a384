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

// Package utils provides utilities
package utils

import (
	"github.com/google/uuid"
)

// IsUUID checks if the given string is a valid resource id. Detail lookups
// with an invalid id are not executed; they report an idle state instead.
func IsUUID(s string) bool {
	if s == "" {
		return false
	}

	_, err := uuid.Parse(s)
	return err == nil
}
