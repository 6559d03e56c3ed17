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
	"dirpx.dev/sp/apis"
	"dirpx.dev/sp/dispose"
)

// Shared is a strong owner of a managed object. Copies made with Clone
// share ownership through one control block; the object's destruction
// action runs exactly once, when the last strong owner calls Release.
//
// The stored pointer returned by Get may differ from the object the block
// destroys: Alias, Cast and Reinterpret build handles that view one place
// while pinning the lifetime of another.
//
// The zero value is an empty handle. A Shared value is owned by one
// goroutine at a time, like a local variable; the counter bookkeeping it
// performs against the shared block is safe against other handles on other
// goroutines.
type Shared[T any] struct {
	// ptr is the stored (possibly aliased) view pointer.
	ptr *T
	// ctl is the control block shared by every handle over the object.
	ctl apis.Control
}

// NewShared wraps a freshly allocated object in a new Shared with the
// default destruction policy (dispose.Default).
// Postconditions: UseCount() == 1 && Get() == p.
//
// p must not already be managed: wrapping one raw pointer twice creates two
// control blocks and two destruction calls. This is unsupported and not
// detected.
func NewShared[T any](p *T) Shared[T] {
	return NewSharedFunc(p, dispose.Default[T]())
}

// NewSharedFunc wraps a freshly allocated object with an explicit
// destruction policy. A nil del behaves like dispose.Noop.
// Postconditions: UseCount() == 1 && Get() == p.
func NewSharedFunc[T any](p *T, del dispose.Func[T]) Shared[T] {
	blk := newBlock(p, del)
	bindSelf(p, blk)
	return Shared[T]{ptr: p, ctl: blk}
}

// MakeShared allocates a copy of v and wraps it.
// Postconditions: UseCount() == 1 && *Get() == v.
func MakeShared[T any](v T) Shared[T] {
	return NewShared(&v)
}

// SharedFromUnique absorbs the pointer and destruction policy of u into a
// fresh Shared, leaving u empty. An empty or nil u yields an empty Shared.
// Postconditions: UseCount() == 1 && Get() == old u.Get() && u.Empty().
func SharedFromUnique[T any](u *Unique[T]) Shared[T] {
	if u == nil || u.Empty() {
		return Shared[T]{}
	}
	del := u.Deleter()
	return NewSharedFunc(u.Detach(), del)
}

// Get returns the stored pointer, nil when empty.
func (s Shared[T]) Get() *T {
	return s.ptr
}

// Empty reports whether the handle owns nothing.
func (s Shared[T]) Empty() bool {
	return s.ctl == nil
}

// UseCount returns the number of live strong owners of the managed object,
// 0 when empty.
func (s Shared[T]) UseCount() int64 {
	if s.ctl == nil {
		return 0
	}
	return s.ctl.StrongCount()
}

// Unique reports whether this handle is the only strong owner.
func (s Shared[T]) Unique() bool {
	if s.ctl == nil {
		return false
	}
	return s.ctl.Unique()
}

// Clone returns a new handle sharing ownership with s.
// Postconditions: clone.UseCount() == s.UseCount(), one higher than before.
func (s Shared[T]) Clone() Shared[T] {
	if s.ctl != nil {
		s.ctl.IncStrong()
	}
	return Shared[T]{ptr: s.ptr, ctl: s.ctl}
}

// Release drops this handle's ownership and empties it. If it was the last
// strong owner, the destruction action runs before Release returns.
// Releasing an empty handle is a no-op; releasing the same handle twice is
// therefore safe, but two Releases of distinct clones both count.
func (s *Shared[T]) Release() {
	ctl := s.ctl
	s.ptr = nil
	s.ctl = nil
	if ctl != nil {
		ctl.DecStrong()
	}
}

// Move transfers ownership out of s into the returned handle, leaving s
// empty. No counts change.
func (s *Shared[T]) Move() Shared[T] {
	out := Shared[T]{ptr: s.ptr, ctl: s.ctl}
	s.ptr = nil
	s.ctl = nil
	return out
}

// Reset releases current ownership, leaving the handle empty.
func (s *Shared[T]) Reset() {
	s.Release()
}

// ResetTo releases current ownership and rebinds the handle to p with a
// fresh control block and the default destruction policy.
func (s *Shared[T]) ResetTo(p *T) {
	s.Release()
	*s = NewShared(p)
}

// ResetFunc releases current ownership and rebinds the handle to p with a
// fresh control block and an explicit destruction policy.
func (s *Shared[T]) ResetFunc(p *T, del dispose.Func[T]) {
	s.Release()
	*s = NewSharedFunc(p, del)
}

// Swap exchanges the contents of s and o.
func (s *Shared[T]) Swap(o *Shared[T]) {
	s.ptr, o.ptr = o.ptr, s.ptr
	s.ctl, o.ctl = o.ctl, s.ctl
}

// Downgrade returns a weak observer over the same object. The observer
// never keeps the object alive.
// Postconditions: weak.UseCount() == s.UseCount().
func (s Shared[T]) Downgrade() Weak[T] {
	if s.ctl != nil {
		s.ctl.IncWeak()
	}
	return Weak[T]{ptr: s.ptr, ctl: s.ctl}
}

// OwnerID returns the identity of the owned control block, 0 when empty.
// Handles over one object compare equal by OwnerID even when their stored
// pointers differ (aliases, casts).
func (s Shared[T]) OwnerID() uint64 {
	if s.ctl == nil {
		return 0
	}
	return s.ctl.ID()
}

// Equal reports whether two handles store the same pointer. Aliased views
// of one object are unequal here while still OwnerEqual.
func Equal[T any](a, b Shared[T]) bool {
	return a.ptr == b.ptr
}

// Owner is the identity surface common to strong and weak handles, used
// for owner-based ordering.
type Owner interface {
	// OwnerID returns the identity of the referenced control block,
	// 0 for empty handles.
	OwnerID() uint64
}

// OwnerBefore reports whether a precedes b in owner-based order. All
// handles over one control block fall into one equivalence class, so
// aliased views of an object collate together in ordered containers.
// Empty handles order first.
func OwnerBefore(a, b Owner) bool {
	return a.OwnerID() < b.OwnerID()
}

// OwnerEqual reports whether a and b reference the same control block
// (or are both empty).
func OwnerEqual(a, b Owner) bool {
	return a.OwnerID() == b.OwnerID()
}

// DeleterAs recovers the destruction policy bound to s's control block as a
// concrete type D. It reports false when s is empty, the block has been
// released, or the bound policy is not a D.
func DeleterAs[D any, T any](s Shared[T]) (D, bool) {
	var zero D
	if s.ctl == nil {
		return zero, false
	}
	d, ok := s.ctl.Deleter().(D)
	if !ok {
		return zero, false
	}
	return d, true
}
