// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package networking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemabind/schemabind/pkg/networking"
)

func TestIsURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com/crd.yaml", true},
		{"http://example.com", true},
		{"ftp://example.com", false},
		{"./manifests/crd.yaml", false},
		{"manifests/crd.yaml", false},
		{"k8s", false},
		{"", false},
		{"https://", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, networking.IsURL(tc.input), "input %q", tc.input)
	}
}

func TestAddressReferencesPrivateIp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		address   string
		expectErr bool
	}{
		{"127.0.0.1:443", true},
		{"10.1.2.3:8080", true},
		{"172.16.0.1:443", true},
		{"192.168.1.1:443", true},
		{"169.254.1.1:80", true},
		{"[::1]:443", true},
		{"8.8.8.8:443", false},
		{"1.1.1.1:53", false},
		// Hostnames are not resolved here; the dial-time control sees IPs only.
		{"example.com:443", false},
	}

	for _, tc := range tests {
		err := networking.AddressReferencesPrivateIp(tc.address)
		if tc.expectErr {
			require.Error(t, err, tc.address)
			assert.Contains(t, err.Error(), networking.ErrPrivateIpAddress)
		} else {
			assert.NoError(t, err, tc.address)
		}
	}
}

func TestBuilderRejectsMissingCABundle(t *testing.T) {
	t.Parallel()
	_, err := networking.NewHttpClientBuilder().
		WithCABundle("/nonexistent/ca.pem").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CA certificate bundle")
}

func TestBuilderDefaults(t *testing.T) {
	t.Parallel()
	client, err := networking.NewHttpClientBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, networking.HttpTimeout, client.Timeout)
	require.NotNil(t, client.CheckRedirect)
}
