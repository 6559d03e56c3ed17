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

package sp

import (
	"errors"

	"dirpx.dev/sp/apis"
)

// ErrNotOwned is returned by SharedFromSelf when the object has never been
// captured by a Shared handle (or is already being destroyed). It signals a
// programming error in the caller: the object is not owned the way the API
// requires. It is surfaced, not defaulted to an empty handle, because an
// empty handle would mask the bug.
var ErrNotOwned = errors.New("sp: object is not managed by any shared reference")

// SelfRef lets a managed type mint additional strong owners over itself
// once it is owned. Embed it with the enclosing type as the parameter:
//
//	type Session struct {
//		sp.SelfRef[Session]
//		...
//	}
//
// The first time a *Session is wrapped by a fresh-block constructor
// (NewShared, NewSharedFunc, MakeShared, SharedFromUnique, ResetTo, ...),
// the embedded record binds to that handle's control block. The binding
// happens exactly once per object; later wraps of the same object reuse it.
// From then on the session can hand out owners of itself:
//
//	func (s *Session) Subscribe(bus *Bus) error {
//		self, err := s.SharedFromSelf()
//		if err != nil {
//			return err
//		}
//		bus.Add(self)
//		return nil
//	}
//
// Embedding SelfRef with the wrong type parameter leaves the record
// unbound, and SharedFromSelf fails with ErrNotOwned.
type SelfRef[T any] struct {
	// self is a borrowed observer over the enclosing object. It holds no
	// weak unit: the record lives inside the object, so it can never
	// outlive the strong owners whose implicit unit keeps the block alive.
	self Weak[T]
}

// selfBindable is the detection seam for the fresh-block constructors:
// *SelfRef[T] implements it, so any type embedding SelfRef does too.
type selfBindable interface {
	bindSelf(self any, ctl apis.Control)
}

// Ensure *SelfRef implements selfBindable.
var _ selfBindable = (*SelfRef[struct{}])(nil)

// bindSelf binds the record to the control block of the first wrapping
// handle. One-shot per object: a bound record ignores later calls for the
// same address, so re-wrapping an object (itself unsupported) cannot
// re-point existing self references. A record whose stored pointer differs
// from the object being wrapped was carried along by a value copy of a
// bound object; it is stale and binds afresh, so the copy mints owners of
// itself, never of the object it was copied from. The record holds no weak
// unit, so rebinding needs no release.
func (r *SelfRef[T]) bindSelf(self any, ctl apis.Control) {
	p, ok := self.(*T)
	if !ok {
		// Embedded with a mismatched type parameter; leave unbound.
		return
	}
	if r.self.ctl != nil && r.self.ptr == p {
		return
	}
	r.self = Weak[T]{ptr: p, ctl: ctl}
}

// SharedFromSelf returns a new strong owner of the enclosing object.
// It fails with ErrNotOwned when the object was never captured by a Shared
// handle, including stack-allocated and Unique-owned objects.
func (r *SelfRef[T]) SharedFromSelf() (Shared[T], error) {
	s := r.self.Lock()
	if s.Empty() {
		return Shared[T]{}, ErrNotOwned
	}
	return s, nil
}

// WeakFromSelf returns a weak observer over the enclosing object. The
// observer is empty when the object was never captured by a Shared handle
// or is already destroyed.
func (r *SelfRef[T]) WeakFromSelf() Weak[T] {
	if r.self.Expired() {
		return Weak[T]{}
	}
	return r.self.Clone()
}

// bindSelf probes p for an embedded SelfRef and binds it to ctl. Invoked by
// every fresh-block construction form.
func bindSelf[T any](p *T, ctl apis.Control) {
	if p == nil || ctl == nil {
		return
	}
	if b, ok := any(p).(selfBindable); ok {
		b.bindSelf(any(p), ctl)
	}
}
