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

// Package query provides a keyed cache of server responses. Each key holds
// at most one in-flight fetch at a time, results carry a freshness window,
// and mutations invalidate whole resource namespaces rather than
// individual entries.
package query

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/quillnotes/quill/pkg/clock"
)

const (
	// hardExpiration is the upper bound on how long an entry may be served,
	// regardless of stale-time
	hardExpiration = 10 * time.Minute
	// purgeInterval is how often expired entries are purged
	purgeInterval = 5 * time.Minute
)

// FetchFunc loads the value for a key from the server
type FetchFunc func() (interface{}, error)

// Options control a single lookup
type Options struct {
	// StaleTime is the window during which cached data is served without
	// contacting the server. Zero means the data is always considered
	// possibly stale: it is served, but a background refresh is started.
	StaleTime time.Duration
	// Enabled gates execution. A disabled lookup performs no fetch and
	// reports an idle result.
	Enabled bool
}

// Result is the client-facing state of a query. A disabled lookup reports
// IsIdle: no data, not loading, not an error.
type Result struct {
	Data      interface{}
	Err       error
	IsLoading bool
	IsError   bool
	IsIdle    bool
}

type entry struct {
	data      interface{}
	hasData   bool
	err       error
	fetchedAt time.Time
	stale     bool

	// generation counts initiated fetches. A completing fetch applies its
	// result only if no newer fetch has been initiated since, so a slow
	// stale response can never overwrite a fresher one.
	generation uint64
	applied    uint64
	inflight   chan struct{}
}

// Cache is a keyed, deduplicated, TTL-aware cache of server responses
type Cache struct {
	mu    sync.Mutex
	store *gocache.Cache
	kinds map[Kind]map[string]struct{}
	subs  map[string]map[chan struct{}]struct{}
	clock clock.Clock
}

// NewCache creates a cache using the given clock for freshness decisions
func NewCache(c clock.Clock) *Cache {
	return &Cache{
		store: gocache.New(hardExpiration, purgeInterval),
		kinds: map[Kind]map[string]struct{}{},
		subs:  map[string]map[chan struct{}]struct{}{},
		clock: c,
	}
}

// entryFor returns the entry for the key, creating and indexing it if needed.
// Callers must hold c.mu.
func (c *Cache) entryFor(key Key) *entry {
	ks := key.String()

	if v, ok := c.store.Get(ks); ok {
		return v.(*entry)
	}

	e := &entry{}
	c.store.Set(ks, e, gocache.DefaultExpiration)

	byKind, ok := c.kinds[key.Kind]
	if !ok {
		byKind = map[string]struct{}{}
		c.kinds[key.Kind] = byKind
	}
	byKind[ks] = struct{}{}

	return e
}

func (c *Cache) snapshot(e *entry) Result {
	if e.hasData {
		// data is the last known successful result; a failed refresh is
		// reported alongside it
		return Result{Data: e.data, Err: e.err, IsError: e.err != nil}
	}
	if e.err != nil {
		return Result{Err: e.err, IsError: true}
	}
	if e.inflight != nil {
		return Result{IsLoading: true}
	}

	return Result{}
}

// Get returns the cached value for the key, fetching it if necessary.
// Fresh data is returned directly. Stale data is returned immediately while
// a background refresh runs. Concurrent callers for the same key share a
// single in-flight fetch.
func (c *Cache) Get(key Key, fetch FetchFunc, opts Options) Result {
	if !opts.Enabled {
		return Result{IsIdle: true}
	}

	c.mu.Lock()
	e := c.entryFor(key)

	if e.hasData {
		fresh := !e.stale && opts.StaleTime > 0 && c.clock.Now().Sub(e.fetchedAt) < opts.StaleTime
		if !fresh && e.inflight == nil {
			c.startFetch(key, e, fetch)
		}
		res := c.snapshot(e)
		c.mu.Unlock()
		return res
	}

	if e.inflight != nil {
		// another caller is already fetching this key; wait for it
		ch := e.inflight
		c.mu.Unlock()
		<-ch

		c.mu.Lock()
		res := c.snapshot(c.entryFor(key))
		c.mu.Unlock()
		return res
	}

	ch := c.startFetch(key, e, fetch)
	c.mu.Unlock()
	<-ch

	c.mu.Lock()
	res := c.snapshot(c.entryFor(key))
	c.mu.Unlock()
	return res
}

// Refetch bypasses freshness and loads the key from the server, waiting for
// the result. It is the manual refresh trigger.
func (c *Cache) Refetch(key Key, fetch FetchFunc, opts Options) Result {
	if !opts.Enabled {
		return Result{IsIdle: true}
	}

	c.mu.Lock()
	e := c.entryFor(key)

	var ch chan struct{}
	if e.inflight != nil {
		ch = e.inflight
	} else {
		ch = c.startFetch(key, e, fetch)
	}
	c.mu.Unlock()
	<-ch

	c.mu.Lock()
	res := c.snapshot(c.entryFor(key))
	c.mu.Unlock()
	return res
}

// Peek reports the current state of the key without triggering a fetch
func (c *Cache) Peek(key Key) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.store.Get(key.String()); ok {
		return c.snapshot(v.(*entry))
	}

	return Result{}
}

// startFetch begins a fetch for the key and returns the channel closed on
// completion. Callers must hold c.mu.
func (c *Cache) startFetch(key Key, e *entry, fetch FetchFunc) chan struct{} {
	e.generation++
	gen := e.generation
	ch := make(chan struct{})
	e.inflight = ch

	go func() {
		data, err := fetch()
		c.complete(key, gen, data, err, ch)
	}()

	return ch
}

func (c *Cache) complete(key Key, gen uint64, data interface{}, err error, ch chan struct{}) {
	c.mu.Lock()

	var notified bool
	if v, ok := c.store.Get(key.String()); ok {
		e := v.(*entry)

		if gen == e.generation {
			// the most recently initiated fetch wins
			if err != nil {
				e.err = err
				if !e.hasData {
					e.data = nil
				}
			} else {
				e.data = data
				e.hasData = true
				e.err = nil
				e.fetchedAt = c.clock.Now()
				e.stale = false
				e.applied = gen
			}
			notified = true
		}

		if e.inflight == ch {
			e.inflight = nil
		}
	}

	subs := c.subsFor(key)
	c.mu.Unlock()

	close(ch)
	if notified {
		notify(subs)
	}
}

// Set writes a value for the key directly, without a fetch. It is used by
// mutation flows to publish a just-returned entity so that readers never
// see a flash of stale data while the broader invalidation refetches.
func (c *Cache) Set(key Key, data interface{}) {
	c.mu.Lock()
	e := c.entryFor(key)
	e.data = data
	e.hasData = true
	e.err = nil
	e.fetchedAt = c.clock.Now()
	e.stale = false
	// count the write as the newest fetch so that slower in-flight
	// responses for this key are discarded
	e.generation++
	e.applied = e.generation
	subs := c.subsFor(key)
	c.mu.Unlock()

	notify(subs)
}

// Invalidate marks every entry under the kind's namespace stale. Cached
// data remains servable, but the next access triggers a refetch, and
// current subscribers are notified immediately.
func (c *Cache) Invalidate(kind Kind) {
	c.mu.Lock()

	var allSubs []chan struct{}
	for ks := range c.kinds[kind] {
		v, ok := c.store.Get(ks)
		if !ok {
			// expired out of the store; drop from the index
			delete(c.kinds[kind], ks)
			continue
		}

		e := v.(*entry)
		e.stale = true
		// discard responses from fetches initiated before the invalidation,
		// so they cannot stamp the entry fresh with pre-mutation data
		e.generation++

		for ch := range c.subs[ks] {
			allSubs = append(allSubs, ch)
		}
	}
	c.mu.Unlock()

	notify(allSubs)
}

// Subscribe registers interest in a key. The returned channel receives a
// signal whenever the key is refreshed or invalidated. The cancel function
// must be called when the subscriber goes away; after cancel no further
// signals are delivered.
func (c *Cache) Subscribe(key Key) (<-chan struct{}, func()) {
	ks := key.String()
	ch := make(chan struct{}, 1)

	c.mu.Lock()
	byKey, ok := c.subs[ks]
	if !ok {
		byKey = map[chan struct{}]struct{}{}
		c.subs[ks] = byKey
	}
	byKey[ch] = struct{}{}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		delete(c.subs[ks], ch)
		if len(c.subs[ks]) == 0 {
			delete(c.subs, ks)
		}
		c.mu.Unlock()
	}

	return ch, cancel
}

// subsFor snapshots the subscriber channels for a key. Callers must hold c.mu.
func (c *Cache) subsFor(key Key) []chan struct{} {
	var ret []chan struct{}
	for ch := range c.subs[key.String()] {
		ret = append(ret, ch)
	}

	return ret
}

func notify(subs []chan struct{}) {
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
