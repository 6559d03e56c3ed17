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

// Package dispose provides canned destruction policies for managed objects.
//
// A policy is just a Func[T]. Handles invoke it exactly once, when the last
// strong owner of the object is dropped. Policies exist for external
// resources (files, connections, pooled buffers); plain values need none,
// since dropping the last reference already unpins them for the collector.
package dispose

import "io"

// Func is a destruction action bound to a managed *T.
// It is invoked at most once per object and never with a nil pointer.
type Func[T any] func(*T)

// Default returns the policy used when a handle is constructed without an
// explicit one: if *T implements io.Closer the object is closed (any close
// error is discarded), otherwise the policy does nothing.
func Default[T any]() Func[T] {
	return func(p *T) {
		if c, ok := any(p).(io.Closer); ok {
			_ = c.Close()
		}
	}
}

// Noop returns a policy that does nothing. Use it for objects owned
// elsewhere, e.g. arena- or pool-resident values observed through handles.
func Noop[T any]() Func[T] {
	return func(*T) {}
}

// Chain returns a policy that invokes each non-nil policy in order.
func Chain[T any](policies ...Func[T]) Func[T] {
	return func(p *T) {
		for _, d := range policies {
			if d != nil {
				d(p)
			}
		}
	}
}
