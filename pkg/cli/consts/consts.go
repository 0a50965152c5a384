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

// Package consts provides definitions of constants
package consts

var (
	// QuillDirName is the name of the directory containing quill files
	QuillDirName = "quill"
	// QuillDBFileName is a filename for the quill SQLite database
	QuillDBFileName = "quill.db"
	// TmpContentFileBase is the base for the filename for a temporary content
	TmpContentFileBase = "QUILL_TMPCONTENT"
	// TmpContentFileExt is the extension for the temporary content file
	TmpContentFileExt = "md"
	// ConfigFilename is the name of the config file
	ConfigFilename = "quillrc"
	// EnvFilename is the name of the optional env override file
	EnvFilename = ".env"

	// SystemSessionKey is the key under which the session token is stored
	SystemSessionKey = "session_token"
	// SystemSessionKeyExpiry is the timestamp at which the session token will expire
	SystemSessionKeyExpiry = "session_token_expiry"
)
