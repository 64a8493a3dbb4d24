// SPDX-License-Identifier: MIT
// Package: pregel-ex/builder
package builder

import "github.com/Gearhartlove/pregel-ex/core"

// builderConfig aggregates the knobs that apply to the graph Finish
// ultimately creates, not to any one vertex or edge.
type builderConfig struct {
	graphOpts []core.GraphOption
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
