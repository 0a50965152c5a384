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

// Package output provides functions to print informations on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"strings"

	"github.com/quillnotes/quill/pkg/cli/client"
	"github.com/quillnotes/quill/pkg/cli/log"
)

// NoteSummaries prints one line per note with paging info
func NoteSummaries(page client.Page[client.NoteSummary]) {
	for _, n := range page.Content {
		var markers []string
		if n.Pinned {
			markers = append(markers, log.ColorYellow.Sprint("pinned"))
		}
		if n.Archived {
			markers = append(markers, log.ColorGray.Sprint("archived"))
		}

		line := fmt.Sprintf("%s %s", log.ColorGray.Sprint(n.ID), n.Title)
		if n.NotebookName != nil {
			line = fmt.Sprintf("%s %s", line, log.ColorBlue.Sprintf("(%s)", *n.NotebookName))
		}
		if len(markers) > 0 {
			line = fmt.Sprintf("%s [%s]", line, strings.Join(markers, ", "))
		}

		log.Plainf("%s\n", line)
	}

	log.Plainf("total %d\n", page.TotalElements)
}

// NoteDetail prints a note in full
func NoteDetail(n client.NoteDetail) {
	log.Infof("title: %s\n", n.Title)
	if n.NotebookName != nil {
		log.Infof("notebook: %s\n", *n.NotebookName)
	}
	if len(n.Tags) > 0 {
		names := make([]string, 0, len(n.Tags))
		for _, t := range n.Tags {
			names = append(names, t.Name)
		}
		log.Infof("tags: %s\n", strings.Join(names, ", "))
	}
	log.Infof("pinned: %t\n", n.Pinned)
	log.Infof("archived: %t\n", n.Archived)
	log.Infof("updated at: %s\n", n.UpdatedAt)
	log.Infof("version: %d\n", n.Version)

	fmt.Printf("\n------------------------content------------------------\n")
	fmt.Printf("%s", n.Content)
	fmt.Printf("\n-------------------------------------------------------\n")
}

// Notebooks prints one line per notebook with paging info
func Notebooks(page client.Page[client.Notebook]) {
	for _, nb := range page.Content {
		line := fmt.Sprintf("%s %s %s", log.ColorGray.Sprint(nb.ID), nb.Name, log.ColorGray.Sprintf("(%d notes)", nb.NoteCount))
		log.Plainf("%s\n", line)
	}

	log.Plainf("total %d\n", page.TotalElements)
}

// Tags prints one line per tag with paging info
func Tags(page client.Page[client.Tag]) {
	for _, t := range page.Content {
		line := fmt.Sprintf("%s %s", log.ColorGray.Sprint(t.ID), t.Name)
		if t.ColorHex != nil {
			line = fmt.Sprintf("%s %s", line, log.ColorGray.Sprint(*t.ColorHex))
		}
		line = fmt.Sprintf("%s %s", line, log.ColorGray.Sprintf("(%d notes)", t.NoteCount))
		log.Plainf("%s\n", line)
	}

	log.Plainf("total %d\n", page.TotalElements)
}

// UserProfile prints the current user
func UserProfile(u client.UserProfile) {
	log.Infof("email: %s\n", u.Email)
	log.Infof("roles: %s\n", strings.Join(u.Roles, ", "))
	log.Infof("enabled: %t\n", u.Enabled)
	log.Infof("locked: %t\n", u.Locked)
	log.Infof("created at: %s\n", u.CreatedAt)
}
