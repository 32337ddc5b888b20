// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"slices"
)

// registerImport appends the original (pre-dispatch) import specification
// string to the persisted import list. The append is idempotent: if the
// exact string is already present, the config is left untouched.
func registerImport(ctx context.Context, store Store, spec string) error {
	return store.Update(ctx, func(c *Config) {
		if slices.Contains(c.Imports, spec) {
			return
		}
		c.Imports = append(c.Imports, spec)
	})
}

func listImports(p Provider) ([]string, error) {
	cfg, err := p.LoadOrCreateConfig()
	if err != nil {
		return nil, err
	}
	return slices.Clone(cfg.Imports), nil
}
