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
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/sp/apis"
	"dirpx.dev/sp/config"
	"dirpx.dev/sp/control"
	"dirpx.dev/sp/diag"
	"dirpx.dev/sp/dispose"
)

// init initializes the global diagnostics state.
func init() {
	// Initialize state with the default cfg and no tracker.
	st.Store(&state{cfg: config.DefaultConfig()})
}

// state is the immutable global snapshot: configuration plus the optional
// live-block tracker. Readers load it atomically; writers build and publish
// a new one under buildMu.
type state struct {
	cfg apis.Config
	trk apis.Tracker
}

var (
	// st holds the current global snapshot.
	st atomic.Pointer[state]
	// buildMu serializes snapshot replacement.
	buildMu sync.Mutex
)

// Configure rebuilds the global configuration from opts and publishes it.
// Enabling diagnostics keeps the existing tracker if one is already
// installed, otherwise a fresh diag tracker is built. Disabling diagnostics
// drops the tracker from the snapshot; already-created blocks keep
// reporting their release to the tracker that saw their creation, it is
// merely no longer reachable through Tracker.
func Configure(opts ...config.Option) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	cfg := config.NewConfig(opts...)

	// Tracker
	trk := old.trk
	if cfg.Diagnostics {
		if trk == nil {
			trk = diag.New()
		}
	} else {
		trk = nil
	}

	// Store the new state atomically.
	st.Store(&state{cfg: cfg, trk: trk})
}

// Config returns the global sp configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// Tracker returns the global live-block tracker, or nil when diagnostics
// are disabled.
func Tracker() apis.Tracker {
	return st.Load().trk
}

// SetTracker installs trk as the global tracker and flips diagnostics
// accordingly. A nil trk disables diagnostics. This is mainly used by tests
// to get a clean deterministic state between test cases.
func SetTracker(trk apis.Tracker) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	cfg := old.cfg
	cfg.Diagnostics = trk != nil
	st.Store(&state{cfg: cfg, trk: trk})
}

// LiveCount returns the number of currently tracked live control blocks,
// or 0 when diagnostics are disabled.
func LiveCount() int {
	if trk := st.Load().trk; trk != nil {
		return trk.Count()
	}
	return 0
}

// newBlock builds a control block over p with del bound as the destruction
// action, and registers it with the current tracker when diagnostics are on.
// The tracker is captured at creation time, so a block always reports its
// release to the tracker that saw its creation.
func newBlock[T any](p *T, del dispose.Func[T]) *control.Block {
	destroy := func() {
		if p != nil && del != nil {
			del(p)
		}
	}

	s := st.Load()
	if s.trk == nil {
		return control.New(destroy, del, nil)
	}

	trk := s.trk
	blk := control.New(destroy, del, func(id uint64) {
		trk.Untrack(id)
	})
	trk.Track(blk.ID(), blockLabel(p, s.cfg))
	return blk
}

// blockLabel derives the tracker label for a block over p.
func blockLabel[T any](p *T, cfg apis.Config) string {
	if !cfg.LabelTypes {
		return ""
	}
	return reflect.TypeOf(p).String()
}
