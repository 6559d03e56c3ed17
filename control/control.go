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

package control

import (
	"errors"
	"sync/atomic"

	"dirpx.dev/sp/apis"
)

var (
	// ErrStrongUnderflow is the panic value for a strong decrement past zero.
	// It always indicates an unbalanced Release (double release) in the caller.
	ErrStrongUnderflow = errors.New("sp(control): strong count underflow, double release")
	// ErrWeakUnderflow is the panic value for a weak decrement past zero.
	ErrWeakUnderflow = errors.New("sp(control): weak count underflow, double release")
)

// lastID is the source of process-unique block identities. IDs start at 1
// so that 0 can stand for "no block" in owner-based comparisons.
var lastID atomic.Uint64

// New constructs a Block for a freshly wrapped object with one strong owner
// and the implicit weak unit.
//
// destroy is the type-erased destruction action, invoked exactly once when
// the last strong owner is dropped. deleter is the concrete destruction
// action retained only for typed recovery; it is never invoked through this
// field. onRelease, if non-nil, runs after the block has been released
// (weak count reached zero) and receives the block identity.
func New(destroy func(), deleter any, onRelease func(uint64)) *Block {
	b := &Block{
		id:        lastID.Add(1),
		destroy:   destroy,
		deleter:   deleter,
		onRelease: onRelease,
	}
	b.strong.Store(1)
	b.weak.Store(1)
	return b
}

// Block is the concrete apis.Control implementation: two atomic counters,
// the bound destruction action, and a process-unique identity.
//
// Note: weak = #weak observers + (1 if strong > 0 else 0). The implicit
// unit is consumed by the 1 -> 0 strong transition, so the block is always
// released strictly after the object it tracked.
type Block struct {
	// strong is the number of live strong owners.
	strong atomic.Int64
	// weak is the number of live weak observers plus the implicit unit.
	weak atomic.Int64
	// id is the process-unique block identity, assigned at creation.
	id uint64
	// destroy is the type-erased destruction action. Cleared on release.
	destroy func()
	// deleter is the concrete destruction action, kept for typed recovery.
	deleter any
	// onRelease is an optional hook that observes the final release.
	onRelease func(uint64)
}

// Ensure Block implements apis.Control.
var _ apis.Control = (*Block)(nil)

// IncStrong records a new strong owner.
func (b *Block) IncStrong() {
	b.strong.Add(1)
}

// TryIncStrong records a new strong owner only if the object is still alive.
// The expiry check and the increment are a single compare-and-swap, so a
// concurrent DecStrong can never be interleaved between them: either the
// swap lands before the count reaches zero and the caller holds a valid
// owner, or it observes zero and fails.
func (b *Block) TryIncStrong() bool {
	for {
		n := b.strong.Load()
		if n == 0 {
			return false
		}
		if b.strong.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// IncWeak records a new weak observer.
func (b *Block) IncWeak() {
	b.weak.Add(1)
}

// DecStrong drops a strong owner. The 1 -> 0 transition invokes the bound
// destruction action exactly once and then consumes the implicit weak unit.
func (b *Block) DecStrong() {
	n := b.strong.Add(-1)
	if n < 0 {
		panic(ErrStrongUnderflow)
	}
	if n == 0 {
		if b.destroy != nil {
			b.destroy()
		}
		b.DecWeak()
	}
}

// DecWeak drops a weak observer. The 1 -> 0 transition releases the block:
// the bound actions are cleared and the release hook fires. No counter
// operation is valid on a released block.
func (b *Block) DecWeak() {
	n := b.weak.Add(-1)
	if n < 0 {
		panic(ErrWeakUnderflow)
	}
	if n == 0 {
		b.destroy = nil
		b.deleter = nil
		if hook := b.onRelease; hook != nil {
			b.onRelease = nil
			hook(b.id)
		}
	}
}

// StrongCount returns the number of live strong owners.
func (b *Block) StrongCount() int64 {
	return b.strong.Load()
}

// WeakCount returns the number of live weak observers, excluding the
// implicit unit held on behalf of the strong owners.
func (b *Block) WeakCount() int64 {
	w := b.weak.Load()
	if b.strong.Load() > 0 {
		w--
	}
	return w
}

// Unique reports whether exactly one strong owner is live.
func (b *Block) Unique() bool {
	return b.strong.Load() == 1
}

// Expired reports whether the strong count has reached zero.
func (b *Block) Expired() bool {
	return b.strong.Load() == 0
}

// Deleter returns the retained concrete destruction action, or nil after
// the block has been released.
func (b *Block) Deleter() any {
	return b.deleter
}

// ID returns the process-unique identity of this block.
func (b *Block) ID() uint64 {
	return b.id
}
