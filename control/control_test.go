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

package control_test

import (
	"testing"

	"dirpx.dev/sp/control"
)

func TestNew_InitialCounts(t *testing.T) {
	b := control.New(nil, nil, nil)

	if got := b.StrongCount(); got != 1 {
		t.Fatalf("StrongCount() = %d, want 1", got)
	}
	// The implicit unit is excluded: no weak observers yet.
	if got := b.WeakCount(); got != 0 {
		t.Fatalf("WeakCount() = %d, want 0", got)
	}
	if !b.Unique() {
		t.Fatalf("Unique() = false, want true")
	}
	if b.Expired() {
		t.Fatalf("Expired() = true, want false")
	}
	if b.ID() == 0 {
		t.Fatalf("ID() = 0, want non-zero")
	}
}

func TestIDs_Unique(t *testing.T) {
	a := control.New(nil, nil, nil)
	b := control.New(nil, nil, nil)
	if a.ID() == b.ID() {
		t.Fatalf("two blocks share ID %d", a.ID())
	}
}

func TestDecStrong_DestroysAtZero_Once(t *testing.T) {
	destroyed := 0
	b := control.New(func() { destroyed++ }, nil, nil)

	b.IncStrong()
	b.IncStrong()

	b.DecStrong()
	b.DecStrong()
	if destroyed != 0 {
		t.Fatalf("destroy ran with %d owners left", b.StrongCount())
	}

	b.DecStrong()
	if destroyed != 1 {
		t.Fatalf("destroy ran %d times, want 1", destroyed)
	}
	if !b.Expired() {
		t.Fatalf("Expired() = false after last strong release")
	}
}

func TestRelease_AfterLastStrong_NoWeakObservers(t *testing.T) {
	released := 0
	var releasedID uint64
	b := control.New(nil, "deleter", func(id uint64) {
		released++
		releasedID = id
	})
	id := b.ID()

	// The 1 -> 0 strong transition consumes the implicit weak unit, so the
	// block releases immediately when no weak observers exist.
	b.DecStrong()
	if released != 1 {
		t.Fatalf("release hook ran %d times, want 1", released)
	}
	if releasedID != id {
		t.Fatalf("release hook got id %d, want %d", releasedID, id)
	}
	if b.Deleter() != nil {
		t.Fatalf("Deleter() non-nil after release")
	}
}

func TestRelease_DeferredToLastWeak(t *testing.T) {
	destroyed := 0
	released := 0
	b := control.New(func() { destroyed++ }, nil, func(uint64) { released++ })

	b.IncWeak()
	b.IncWeak()
	if got := b.WeakCount(); got != 2 {
		t.Fatalf("WeakCount() = %d, want 2", got)
	}

	b.DecStrong()
	if destroyed != 1 {
		t.Fatalf("destroy ran %d times, want 1", destroyed)
	}
	if released != 0 {
		t.Fatalf("block released with %d weak observers left", b.WeakCount())
	}

	b.DecWeak()
	if released != 0 {
		t.Fatalf("block released before last weak observer dropped")
	}
	b.DecWeak()
	if released != 1 {
		t.Fatalf("release hook ran %d times, want 1", released)
	}
}

func TestTryIncStrong(t *testing.T) {
	b := control.New(nil, nil, nil)

	if !b.TryIncStrong() {
		t.Fatalf("TryIncStrong() = false on a live block")
	}
	if got := b.StrongCount(); got != 2 {
		t.Fatalf("StrongCount() = %d, want 2", got)
	}

	b.IncWeak() // keep the block observable past expiry
	b.DecStrong()
	b.DecStrong()

	if b.TryIncStrong() {
		t.Fatalf("TryIncStrong() = true on an expired block")
	}
	if got := b.StrongCount(); got != 0 {
		t.Fatalf("StrongCount() = %d after failed promotion, want 0", got)
	}
}

func TestWeakCount_ExcludesImplicitUnit(t *testing.T) {
	b := control.New(nil, nil, nil)
	b.IncWeak()

	if got := b.WeakCount(); got != 1 {
		t.Fatalf("WeakCount() = %d with one observer and live owners, want 1", got)
	}

	b.DecStrong()
	// Strong owners gone: the implicit unit is consumed, one observer left.
	if got := b.WeakCount(); got != 1 {
		t.Fatalf("WeakCount() = %d after expiry, want 1", got)
	}
}

func TestDeleter_Retained(t *testing.T) {
	type del func(int)
	var d del = func(int) {}
	b := control.New(nil, d, nil)

	got, ok := b.Deleter().(del)
	if !ok || got == nil {
		t.Fatalf("Deleter() did not round-trip the bound action")
	}
}

func TestDecStrong_Underflow_Panics(t *testing.T) {
	b := control.New(nil, nil, nil)
	b.IncWeak() // keep the weak side balanced past the strong underflow

	b.DecStrong()

	defer func() {
		if r := recover(); r != control.ErrStrongUnderflow {
			t.Fatalf("recover() = %v, want ErrStrongUnderflow", r)
		}
	}()
	b.DecStrong()
}

func TestDecWeak_Underflow_Panics(t *testing.T) {
	b := control.New(nil, nil, nil)
	b.DecStrong() // consumes the implicit weak unit, block released

	defer func() {
		if r := recover(); r != control.ErrWeakUnderflow {
			t.Fatalf("recover() = %v, want ErrWeakUnderflow", r)
		}
	}()
	b.DecWeak()
}
