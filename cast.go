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

import "unsafe"

// Alias returns a handle that shares ownership with src but stores p as its
// view pointer. The view need not be reachable from the object the control
// block destroys; dereferencing follows p while lifetime still follows
// src's object. Typical use is pinning a struct while viewing a field:
//
//	node := sp.MakeShared(Node{})
//	val := sp.Alias(node, &node.Get().Value)
//
// An empty src yields an empty result regardless of p.
func Alias[T, U any](src Shared[U], p *T) Shared[T] {
	if src.ctl == nil {
		return Shared[T]{}
	}
	src.ctl.IncStrong()
	return Shared[T]{ptr: p, ctl: src.ctl}
}

// Cast returns a handle sharing ownership with src whose view pointer is
// conv(src.Get()). A nil result from conv (the failed conversion case)
// yields an empty handle without touching src's ownership. conv must be a
// pure view conversion; it runs once, against the stored pointer.
//
// Interface up- and down-conversions are written as converters:
//
//	r := sp.Cast(f, func(p *os.File) *io.Reader { r := io.Reader(p); return &r })
func Cast[T, U any](src Shared[U], conv func(*U) *T) Shared[T] {
	if src.ctl == nil || conv == nil {
		return Shared[T]{}
	}
	p := conv(src.ptr)
	if p == nil {
		return Shared[T]{}
	}
	return Alias(src, p)
}

// Reinterpret returns a handle sharing ownership with src whose view
// pointer is src's stored pointer reinterpreted as *T. Layout compatibility
// of T and U is the caller's responsibility; a mismatched reinterpretation
// is a contract violation, not a reportable error.
func Reinterpret[T, U any](src Shared[U]) Shared[T] {
	if src.ctl == nil {
		return Shared[T]{}
	}
	return Alias(src, (*T)(unsafe.Pointer(src.ptr)))
}
