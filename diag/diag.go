/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package diag tracks live control blocks for leak diagnostics.
//
// A Tracker holds one entry per block between its creation and its final
// release. A non-empty tracker at a point where the program expects all
// handles to be gone names exactly the objects that leaked, by type.
package diag

import (
	"sync"

	"dirpx.dev/sp/apis"
)

// New constructs an empty Tracker.
func New() apis.Tracker {
	return &tracker{}
}

// tracker is a simple Tracker implementation backed by sync.Map.
type tracker struct {
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps block id to label.
	m sync.Map // map[uint64]string
	// count tracks the number of live entries.
	count int
}

// Ensure tracker implements apis.Tracker.
var _ apis.Tracker = (*tracker)(nil)

// Track records a freshly created block. Block ids are process-unique, so a
// duplicate Track for a live id is a no-op.
func (t *tracker) Track(id uint64, label string) {
	// Fast read path: idempotency check without locking.
	if _, ok := t.m.Load(id); ok {
		return
	}

	// Write path: guard with a mutex to keep counter consistent.
	t.mu.Lock()
	defer t.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, ok := t.m.Load(id); ok {
		return
	}

	t.m.Store(id, label)
	t.count++
}

// Untrack removes a released block. Unknown ids are ignored, so Untrack is
// safe to call after Reset.
func (t *tracker) Untrack(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.m.Load(id); !ok {
		return
	}
	t.m.Delete(id)
	t.count--
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (t *tracker) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, t.Count())
	t.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			ID:    key.(uint64),
			Label: value.(string),
		})
		return true
	})
	return entries
}

// Count returns the number of currently tracked blocks.
func (t *tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Reset clears all tracked entries.
func (t *tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m = sync.Map{}
	t.count = 0
}
