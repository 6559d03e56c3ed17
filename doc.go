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

// Package sp provides manual, deterministic lifetime management for
// heap-allocated objects through shared and exclusive ownership handles.
//
// sp is infrastructure for code that must know exactly when a resource is
// reclaimed: pooled buffers, file handles, connections, arena-resident
// values. The garbage collector frees memory eventually; sp runs a bound
// destruction action at a precise, observable point, the moment the last
// owner lets go.
//
// # Handles
//
// Three generic handle types cover the two ownership disciplines:
//
//   - Shared[T] is a strong owner. Copies made with Clone share ownership;
//     the object's destruction action runs exactly once, when the last
//     strong owner calls Release.
//
//   - Weak[T] is a non-owning observer over the same object. It never keeps
//     the object alive, can report whether the object is gone (Expired),
//     and can attempt promotion back to a strong owner (Lock, Promote).
//
//   - Unique[T] is a sole owner with no shared bookkeeping. It exists for
//     ownership hand-off: SharedFromUnique absorbs a Unique into a fresh
//     Shared, emptying the source.
//
// Go has no destructors, so dropping a handle is explicit: every handle
// type has Release. A Shared or Weak value that goes out of scope without
// Release leaks its count (and, for Shared, pins the object's destruction
// forever); the diagnostics tracker exists to find exactly such leaks.
//
// # Design
//
// Every managed object is paired with exactly one control block holding two
// atomic counters and the object's destruction action:
//
//   - The strong count is the number of live Shared handles. Its 1 -> 0
//     transition destroys the object, exactly once.
//
//   - The weak count is the number of live Weak handles plus one implicit
//     unit standing for "strong owners still exist". Its 1 -> 0 transition
//     releases the block itself, always strictly after the object.
//
// The split lets a Weak answer "is the object gone?" and attempt promotion
// without ever touching the object, and without a second allocation: all
// handles over one object share the one block. Promotion is a
// compare-and-increment-if-nonzero loop, so it can never race a concurrent
// final Release into resurrecting a destroyed object.
//
// A Shared stores its own view pointer next to the block reference, so the
// pointer a handle dereferences may differ from the object whose lifetime
// it pins. Alias builds such views (e.g. a field of a managed struct);
// Cast and Reinterpret derive converted views. All of them share the
// source's block, so lifetime always follows the original object.
//
// Types that embed SelfRef[T] can mint additional strong owners over
// themselves once they have been wrapped (SharedFromSelf), the way a
// callback-registering object hands itself out.
//
// # Concurrency
//
// Counter bookkeeping is race-free: independent handles bound to one block
// may be cloned, released, downgraded and locked from independent
// goroutines. A single handle value is like a local variable, owned by one
// goroutine at a time. The managed object's own state is not synchronized.
//
// # Diagnostics
//
// The package holds an atomic pointer to an immutable snapshot (config plus
// optional live-block tracker). Readers load the snapshot; Configure builds
// and publishes a new one. With diagnostics enabled every wrap registers
// its block with the tracker and every final release removes it, so
// Tracker().Entries() names the objects currently kept alive:
//
//	sp.Configure(config.WithDiagnostics(true))
//	s := sp.MakeShared(buf)
//	...
//	sp.LiveCount() // 1 until the last owner of buf releases
//
// Diagnostics are off by default; the default configuration keeps no
// process-wide state about individual objects.
//
// # What sp does not do
//
// Reference cycles between Shared handles are never collected; break them
// with Weak, as with any reference-counting scheme. Double-wrapping one raw
// pointer in two independent Shared handles creates two control blocks and
// two destruction calls; it is unsupported and undetected. Dereferencing an
// empty handle is a caller bug and faults like any nil pointer.
package sp
