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

// Package search provides the debounce gate for interactive full-text
// search. Rapid input changes coalesce: a value is committed only after
// the input has settled for a fixed interval, and committed values shorter
// than the minimum length never execute.
package search

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultSettle is the inactivity interval after which the latest
	// input value is committed
	DefaultSettle = 300 * time.Millisecond
	// MinQueryLength is the minimum trimmed length for a committed value
	// to execute a search
	MinQueryLength = 3
)

// Gate coalesces a rapidly-changing input string into settled query
// values. The settle timer restarts on every input: the delay is
// inactivity-based, not a fixed interval from the first keystroke.
type Gate struct {
	mu      sync.Mutex
	settle  time.Duration
	timer   *time.Timer
	pending string
	current string
	stopped bool
	queries chan string
}

// NewGate creates a gate with the given settle interval. A non-positive
// interval falls back to the default.
func NewGate(settle time.Duration) *Gate {
	if settle <= 0 {
		settle = DefaultSettle
	}

	return &Gate{
		settle:  settle,
		queries: make(chan string, 1),
	}
}

// Input feeds a new raw value into the gate, restarting the settle timer
func (g *Gate) Input(value string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}

	g.pending = value

	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(g.settle, g.commit)
}

// commit runs when the settle timer fires: the pending value becomes the
// current value, and is delivered only if it is executable.
func (g *Gate) commit() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}

	value := g.pending
	g.current = value

	if !Executable(value) {
		return
	}

	// drop a stale undelivered value in favor of the newer one; the
	// channel has room after the drain, so the send cannot block
	select {
	case <-g.queries:
	default:
	}
	g.queries <- value
}

// Queries returns the channel on which executable query values are
// delivered. Values that settle below the minimum length update the
// current value but are never delivered: short input yields an idle state,
// not an execution.
func (g *Gate) Queries() <-chan string {
	return g.queries
}

// Current returns the most recently settled value, executable or not
func (g *Gate) Current() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.current
}

// Executable reports whether a query value meets the minimum length to run.
// Length is counted in characters, so multibyte input is not over-counted.
func Executable(q string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(q)) >= MinQueryLength
}

// Stop releases the timer and closes the query channel. Pending input is
// discarded and no further values are delivered. Stop is idempotent.
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}

	g.stopped = true
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	close(g.queries)
}
