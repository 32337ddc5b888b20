// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schemabind/schemabind/pkg/errors"
	"github.com/schemabind/schemabind/pkg/networking"
)

// SourceFetcher resolves a document locator to raw bytes. Remote fetches are
// timeout-bounded and follow a capped number of redirects; local reads are
// synchronous.
type SourceFetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

type defaultFetcher struct {
	client *http.Client
}

func newDefaultFetcher(cfg EngineConfig) (SourceFetcher, error) {
	builder := networking.NewHttpClientBuilder().
		WithPrivateIPs(cfg.AllowPrivateSourceIP)
	if cfg.CACertificatePath != "" {
		builder = builder.WithCABundle(cfg.CACertificatePath)
	}

	client, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &defaultFetcher{client: client}, nil
}

// Fetch reads the document bytes from a URL or a local file path. Failures
// are surfaced with the original location string.
func (f *defaultFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if networking.IsURL(location) {
		data, err := networking.FetchDocument(ctx, f.client, location)
		if err != nil {
			return nil, errors.NewSourceResolutionError(
				fmt.Sprintf("failed to fetch %q", location), err)
		}
		return data, nil
	}

	// #nosec G304: reading the user-supplied import path is the point.
	data, err := os.ReadFile(filepath.Clean(location))
	if err != nil {
		return nil, errors.NewSourceResolutionError(
			fmt.Sprintf("failed to read %q", location), err)
	}
	return data, nil
}
