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

// Control is the bookkeeping block shared by every strong and weak handle
// bound to one managed object. Exactly one Control exists per managed
// object; handles mutate it only through the counter operations below.
//
// The strong count is the number of live strong handles. The weak count is
// the number of live weak handles plus one implicit unit that stands for
// "strong owners still exist". The managed object is destroyed exactly once,
// when the strong count transitions 1 -> 0; the block itself is released
// exactly once, when the weak count transitions 1 -> 0 (which can only
// happen after the object is already gone, because the 1 -> 0 strong
// transition consumes the implicit weak unit).
//
// All counter operations are safe for concurrent use from independent
// handles. None of them can fail; misuse (an unbalanced decrement) is a
// caller bug and panics.
type Control interface {
	// IncStrong records a new strong owner. Called on handle copy.
	IncStrong()
	// TryIncStrong records a new strong owner only if the object is still
	// alive. It is the promotion path for weak handles: the zero check and
	// the increment are indivisible with respect to concurrent DecStrong
	// calls. Reports whether the owner was added.
	TryIncStrong() bool
	// IncWeak records a new weak observer.
	IncWeak()
	// DecStrong drops a strong owner. At zero it invokes the bound
	// destruction action once and consumes the implicit weak unit.
	DecStrong()
	// DecWeak drops a weak observer. At zero it releases the block.
	DecWeak()

	// StrongCount returns the number of live strong owners.
	StrongCount() int64
	// WeakCount returns the number of live weak observers, excluding the
	// implicit unit held on behalf of the strong owners.
	WeakCount() int64
	// Unique reports whether exactly one strong owner is live.
	Unique() bool
	// Expired reports whether the strong count has reached zero.
	Expired() bool

	// Deleter returns the destruction action bound at creation, retained
	// for typed recovery. Nil after the block has been released.
	Deleter() any
	// ID returns the process-unique identity of this block. Used for
	// owner-based ordering and diagnostics. Never zero.
	ID() uint64
}
