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
	"dirpx.dev/sp/dispose"
)

// Unique is a sole owner of a managed object: no control block, no counts.
// Move ownership with Move or hand it to a Shared with SharedFromUnique;
// copying a Unique value and releasing both copies double-destroys the
// object and is a caller bug (Go cannot forbid the copy statically).
//
// The zero value is an empty handle.
type Unique[T any] struct {
	// ptr is the owned pointer.
	ptr *T
	// del is the destruction policy, invoked once on Release.
	del dispose.Func[T]
}

// NewUnique takes ownership of p with the default destruction policy
// (dispose.Default).
func NewUnique[T any](p *T) Unique[T] {
	return Unique[T]{ptr: p, del: dispose.Default[T]()}
}

// NewUniqueFunc takes ownership of p with an explicit destruction policy.
func NewUniqueFunc[T any](p *T, del dispose.Func[T]) Unique[T] {
	return Unique[T]{ptr: p, del: del}
}

// MakeUnique allocates a copy of v and takes ownership of it.
func MakeUnique[T any](v T) Unique[T] {
	return NewUnique(&v)
}

// Get returns the owned pointer, nil when empty.
func (u Unique[T]) Get() *T {
	return u.ptr
}

// Empty reports whether the handle owns nothing.
func (u Unique[T]) Empty() bool {
	return u.ptr == nil
}

// Deleter returns the bound destruction policy. It stays bound after
// Detach so an absorbing handle can carry the same policy.
func (u Unique[T]) Deleter() dispose.Func[T] {
	return u.del
}

// Detach relinquishes ownership and returns the raw pointer, leaving the
// handle empty. The destruction policy does not run; the caller now owns
// the object.
func (u *Unique[T]) Detach() *T {
	p := u.ptr
	u.ptr = nil
	return p
}

// Release destroys the owned object, if any, and empties the handle.
func (u *Unique[T]) Release() {
	if u.ptr != nil && u.del != nil {
		u.del(u.ptr)
	}
	u.ptr = nil
}

// Move transfers ownership out of u into the returned handle, leaving u
// empty.
func (u *Unique[T]) Move() Unique[T] {
	out := Unique[T]{ptr: u.ptr, del: u.del}
	u.ptr = nil
	return out
}

// Reset destroys the owned object, leaving the handle empty.
func (u *Unique[T]) Reset() {
	u.Release()
}

// ResetTo destroys the currently owned object, if any, and takes ownership
// of p under the same destruction policy.
func (u *Unique[T]) ResetTo(p *T) {
	if u.ptr != nil && u.del != nil {
		u.del(u.ptr)
	}
	u.ptr = p
}

// Swap exchanges the contents of u and o, policies included.
func (u *Unique[T]) Swap(o *Unique[T]) {
	u.ptr, o.ptr = o.ptr, u.ptr
	u.del, o.del = o.del, u.del
}
