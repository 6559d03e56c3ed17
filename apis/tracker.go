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

package apis

// Tracker records which control blocks are currently live, for leak
// diagnostics. Keep it minimal so implementations can be lock-free or
// sync.Map-backed.
type Tracker interface {
	// Track records a freshly created block under its identity.
	// Implementations should be idempotent per id.
	Track(id uint64, label string)
	// Untrack removes a released block. Unknown ids are ignored.
	Untrack(id uint64)
	// Count returns the number of currently tracked blocks.
	Count() int
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Reset clears all tracked entries.
	Reset()
}

// Entry is a single live block in a Tracker snapshot.
type Entry struct {
	// ID is the block identity.
	ID uint64
	// Label describes the managed object, typically its type string.
	Label string
}
