// SPDX-License-Identifier: MIT
// Package: pregel-ex/builder
package builder

import "github.com/Gearhartlove/pregel-ex/core"

// BuilderOption customizes the graph Finish constructs.
type BuilderOption func(*builderConfig)

// WithGraphOptions forwards core.GraphOptions (e.g. WithWarnHandler) to the
// graph Finish creates via the registry.
func WithGraphOptions(opts ...core.GraphOption) BuilderOption {
	return func(cfg *builderConfig) { cfg.graphOpts = append(cfg.graphOpts, opts...) }
}
