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

package config

import (
	"dirpx.dev/sp/apis"
)

const (
	// DefaultDiagnostics represents the default for Diagnostics.
	// Tracking is opt-in; wrapping stays allocation- and map-free by default.
	DefaultDiagnostics = false
	// DefaultLabelTypes represents the default for LabelTypes.
	// When tracking is enabled, type-string labels are worth their cost.
	DefaultLabelTypes = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Diagnostics: DefaultDiagnostics,
		LabelTypes:  DefaultLabelTypes,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDiagnostics sets the Diagnostics option.
func WithDiagnostics(enable bool) Option {
	return func(c *apis.Config) {
		c.Diagnostics = enable
	}
}

// WithLabelTypes sets the LabelTypes option.
func WithLabelTypes(label bool) Option {
	return func(c *apis.Config) {
		c.LabelTypes = label
	}
}
