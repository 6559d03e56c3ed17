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

package apis

// Config carries read-only knobs that influence handle construction.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Diagnostics controls whether freshly created control blocks are
	// registered with a live-block Tracker. Off by default; tracking adds
	// a map operation to every wrap and to every final release.
	Diagnostics bool

	// LabelTypes controls whether tracked blocks carry the reflect-derived
	// type string of the managed object as their label. If false, labels
	// are empty and wrapping stays reflection-free.
	LabelTypes bool
}
