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

// ErrExpired is returned by Promote when the observed object has already
// been destroyed. It is recoverable: the object no longer exists, branch
// accordingly.
var ErrExpired = errors.New("sp: weak reference is expired")

// Weak is a non-owning observer over a managed object. It never keeps the
// object alive; it can report whether the object is gone and attempt
// promotion back to a strong owner. It does keep the shared control block
// alive until released.
//
// Construct via Shared.Downgrade or Clone. The zero value is an empty
// observer. Like Shared, a Weak value is owned by one goroutine at a time.
type Weak[T any] struct {
	// ptr is the stored view pointer, retained for promotion.
	ptr *T
	// ctl is the control block shared with the object's strong owners.
	ctl apis.Control
}

// Empty reports whether the observer references nothing.
func (w Weak[T]) Empty() bool {
	return w.ctl == nil
}

// UseCount returns the number of live strong owners of the observed
// object, 0 when empty or expired.
func (w Weak[T]) UseCount() int64 {
	if w.ctl == nil {
		return 0
	}
	return w.ctl.StrongCount()
}

// Expired reports whether the observed object has been destroyed.
// An empty observer reports true: there is no object.
func (w Weak[T]) Expired() bool {
	if w.ctl == nil {
		return true
	}
	return w.ctl.Expired()
}

// Lock attempts promotion to a strong owner. It returns an empty Shared
// when the object is already gone; otherwise a live handle whose UseCount
// is one higher than before the call. The expiry check and the increment
// are indivisible against concurrent Releases, so a successful Lock always
// holds an object whose destruction action has not run.
func (w Weak[T]) Lock() Shared[T] {
	if w.ctl == nil || !w.ctl.TryIncStrong() {
		return Shared[T]{}
	}
	return Shared[T]{ptr: w.ptr, ctl: w.ctl}
}

// Promote is Lock with an explicit failure: it returns ErrExpired instead
// of an empty handle when the object is already gone.
func (w Weak[T]) Promote() (Shared[T], error) {
	s := w.Lock()
	if s.Empty() {
		return Shared[T]{}, ErrExpired
	}
	return s, nil
}

// Clone returns a new observer over the same object.
func (w Weak[T]) Clone() Weak[T] {
	if w.ctl != nil {
		w.ctl.IncWeak()
	}
	return Weak[T]{ptr: w.ptr, ctl: w.ctl}
}

// Release drops this observer and empties it. The shared control block is
// released when the last observer of an already-destroyed object goes.
// Releasing an empty observer is a no-op.
func (w *Weak[T]) Release() {
	ctl := w.ctl
	w.ptr = nil
	w.ctl = nil
	if ctl != nil {
		ctl.DecWeak()
	}
}

// Move transfers the observation out of w into the returned observer,
// leaving w empty. No counts change.
func (w *Weak[T]) Move() Weak[T] {
	out := Weak[T]{ptr: w.ptr, ctl: w.ctl}
	w.ptr = nil
	w.ctl = nil
	return out
}

// Reset releases the observation, leaving the observer empty.
func (w *Weak[T]) Reset() {
	w.Release()
}

// Swap exchanges the contents of w and o.
func (w *Weak[T]) Swap(o *Weak[T]) {
	w.ptr, o.ptr = o.ptr, w.ptr
	w.ctl, o.ctl = o.ctl, w.ctl
}

// OwnerID returns the identity of the referenced control block, 0 when
// empty. See Shared.OwnerID.
func (w Weak[T]) OwnerID() uint64 {
	if w.ctl == nil {
		return 0
	}
	return w.ctl.ID()
}
