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

package sp_test

import (
	"testing"

	"dirpx.dev/sp"
)

func TestNewUnique_And_Release(t *testing.T) {
	destroyed := 0
	p := &thing{n: 1}
	u := sp.NewUniqueFunc(p, countingDel(&destroyed))

	if u.Get() != p {
		t.Fatalf("Get() = %p, want %p", u.Get(), p)
	}
	if u.Empty() {
		t.Fatalf("Empty() = true for a fresh handle")
	}

	u.Release()
	if destroyed != 1 {
		t.Fatalf("destroy ran %d times, want 1", destroyed)
	}
	if !u.Empty() {
		t.Fatalf("Empty() = false after Release")
	}

	u.Release() // empty, no-op
	if destroyed != 1 {
		t.Fatalf("destroy ran %d times after double Release, want 1", destroyed)
	}
}

func TestUnique_DefaultPolicy_ClosesCloser(t *testing.T) {
	f := &fileLike{}
	u := sp.NewUnique(f)
	u.Release()
	if f.closed != 1 {
		t.Fatalf("Close ran %d times, want 1", f.closed)
	}
}

func TestMakeUnique(t *testing.T) {
	u := sp.MakeUnique(thing{n: 6})
	defer u.Release()
	if got := u.Get().n; got != 6 {
		t.Fatalf("Get().n = %d, want 6", got)
	}
}

func TestDetach_RelinquishesWithoutDestroy(t *testing.T) {
	destroyed := 0
	p := &thing{}
	u := sp.NewUniqueFunc(p, countingDel(&destroyed))

	got := u.Detach()
	if got != p {
		t.Fatalf("Detach() = %p, want %p", got, p)
	}
	if !u.Empty() || u.Get() != nil {
		t.Fatalf("handle not empty after Detach")
	}
	if destroyed != 0 {
		t.Fatalf("destroy ran on Detach")
	}
	if u.Deleter() == nil {
		t.Fatalf("policy dropped on Detach; absorbing handles need it")
	}
}

func TestUnique_Move(t *testing.T) {
	destroyed := 0
	u := sp.NewUniqueFunc(&thing{}, countingDel(&destroyed))

	m := u.Move()
	if !u.Empty() {
		t.Fatalf("source not empty after Move")
	}
	u.Release() // empty, no-op
	if destroyed != 0 {
		t.Fatalf("destroy ran releasing the moved-from handle")
	}

	m.Release()
	if destroyed != 1 {
		t.Fatalf("destroy ran %d times, want 1", destroyed)
	}
}

func TestUnique_ResetTo(t *testing.T) {
	destroyed := 0
	u := sp.NewUniqueFunc(&thing{n: 1}, countingDel(&destroyed))

	next := &thing{n: 2}
	u.ResetTo(next)
	if destroyed != 1 {
		t.Fatalf("old object destroyed %d times on ResetTo, want 1", destroyed)
	}
	if u.Get() != next {
		t.Fatalf("Get() = %p after ResetTo, want %p", u.Get(), next)
	}

	u.Release()
	if destroyed != 2 {
		t.Fatalf("new object not destroyed under the retained policy")
	}
}

func TestUnique_Swap(t *testing.T) {
	a := sp.MakeUnique(thing{n: 1})
	b := sp.MakeUnique(thing{n: 2})
	defer a.Release()
	defer b.Release()

	a.Swap(&b)
	if a.Get().n != 2 || b.Get().n != 1 {
		t.Fatalf("Swap left a.n=%d b.n=%d, want 2 and 1", a.Get().n, b.Get().n)
	}
}
