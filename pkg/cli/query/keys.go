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
	"encoding/json"
	"fmt"
)

// Kind is the invalidation namespace for a resource. Invalidating a kind
// drops every cached key under it.
type Kind string

// The resource kinds
const (
	KindNotes     Kind = "notes"
	KindNotebooks Kind = "notebooks"
	KindTags      Kind = "tags"
	KindUsers     Kind = "users"
)

// Key identifies a cached server response. Two lookups share a cache entry
// exactly when their kind, operation and canonicalized parameters match.
type Key struct {
	Kind   Kind
	Op     string
	Params string
}

// NewKey builds a key from a kind, an operation name and a parameter set.
// Parameters are canonicalized through JSON so that equal parameter structs
// always produce the same key.
func NewKey(kind Kind, op string, params interface{}) Key {
	var canonical string
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			// a parameter struct that cannot be marshalled is a programming
			// error; fall back to the Go representation
			canonical = fmt.Sprintf("%+v", params)
		} else {
			canonical = string(b)
		}
	}

	return Key{Kind: kind, Op: op, Params: canonical}
}

// String returns the storage form of the key
func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Kind, k.Op, k.Params)
}
