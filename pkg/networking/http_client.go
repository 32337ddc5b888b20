// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

// Package networking provides the hardened HTTP client used to fetch
// schema documents from remote sources.
package networking

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
	"time"
)

// HttpTimeout is the timeout for outgoing HTTP requests
const HttpTimeout = 30 * time.Second

// MaxRedirects caps how many redirects a fetch may follow before failing.
// Redirect chains longer than this are treated as loops.
const MaxRedirects = 5

const (
	// HttpScheme is the plain HTTP URL scheme
	HttpScheme = "http"
	// HttpsScheme is the TLS HTTP URL scheme
	HttpsScheme = "https"
)

// ErrPrivateIpAddress is the error message fragment used when a connection
// to a private IP address is refused.
const ErrPrivateIpAddress = "request to private IP address blocked"

var privateIPBlocks []*net.IPNet

func init() {
	for _, cidr := range []string{
		"127.0.0.0/8",    // IPv4 loopback
		"10.0.0.0/8",     // RFC1918
		"172.16.0.0/12",  // RFC1918
		"192.168.0.0/16", // RFC1918
		"169.254.0.0/16", // RFC3927 link-local
		"::1/128",        // IPv6 loopback
		"fe80::/10",      // IPv6 link-local
		"fc00::/7",       // IPv6 unique local
	} {
		_, block, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("failed to parse private CIDR %q: %v", cidr, err))
		}
		privateIPBlocks = append(privateIPBlocks, block)
	}
}

// AddressReferencesPrivateIp returns an error if the dial address resolves
// to a private, loopback or link-local IP.
func AddressReferencesPrivateIp(address string) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		host = address
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return nil
	}

	for _, block := range privateIPBlocks {
		if block.Contains(ip) {
			return fmt.Errorf("%s: %s", ErrPrivateIpAddress, host)
		}
	}

	return nil
}

// IsURL reports whether the input looks like an HTTP or HTTPS URL.
func IsURL(input string) bool {
	parsed, err := url.Parse(input)
	if err != nil {
		return false
	}
	return (parsed.Scheme == HttpScheme || parsed.Scheme == HttpsScheme) && parsed.Host != ""
}

// Dialer control function for validating addresses prior to connection
func protectedDialerControl(_, address string, _ syscall.RawConn) error {
	return AddressReferencesPrivateIp(address)
}

// ValidatingTransport is for validating URLs prior to request
type ValidatingTransport struct {
	Transport http.RoundTripper

	// AllowPlainHTTP permits http:// URLs; by default only HTTPS is accepted.
	AllowPlainHTTP bool
}

// RoundTrip validates the request URL prior to forwarding
func (t *ValidatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	parsedUrl, err := url.Parse(req.URL.String())
	if err != nil {
		return nil, fmt.Errorf("the supplied URL %s is malformed", req.URL.String())
	}

	switch parsedUrl.Scheme {
	case HttpsScheme:
	case HttpScheme:
		if !t.AllowPlainHTTP {
			return nil, fmt.Errorf("the supplied URL %s is not HTTPS scheme", req.URL.String())
		}
	default:
		return nil, fmt.Errorf("the supplied URL %s has unsupported scheme %s", req.URL.String(), parsedUrl.Scheme)
	}

	return t.Transport.RoundTrip(req)
}

// HttpClientBuilder provides a fluent interface for building HTTP clients
type HttpClientBuilder struct {
	clientTimeout         time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	caCertPath            string
	allowPrivate          bool
	maxRedirects          int
}

// NewHttpClientBuilder returns a new HttpClientBuilder
func NewHttpClientBuilder() *HttpClientBuilder {
	return &HttpClientBuilder{
		clientTimeout:         HttpTimeout,
		tlsHandshakeTimeout:   10 * time.Second,
		responseHeaderTimeout: 10 * time.Second,
		maxRedirects:          MaxRedirects,
	}
}

// WithCABundle sets the CA certificate bundle path
func (b *HttpClientBuilder) WithCABundle(path string) *HttpClientBuilder {
	b.caCertPath = path
	return b
}

// WithPrivateIPs allows connections to private IP addresses.
// Allowing private IPs also permits plain HTTP, which is needed when
// fetching from in-cluster or test endpoints.
func (b *HttpClientBuilder) WithPrivateIPs(allow bool) *HttpClientBuilder {
	b.allowPrivate = allow
	return b
}

// WithTimeout overrides the overall client timeout
func (b *HttpClientBuilder) WithTimeout(timeout time.Duration) *HttpClientBuilder {
	b.clientTimeout = timeout
	return b
}

// WithMaxRedirects overrides the redirect follow cap
func (b *HttpClientBuilder) WithMaxRedirects(max int) *HttpClientBuilder {
	b.maxRedirects = max
	return b
}

// Build creates the configured HTTP client
func (b *HttpClientBuilder) Build() (*http.Client, error) {
	transport := &http.Transport{
		TLSHandshakeTimeout:   b.tlsHandshakeTimeout,
		ResponseHeaderTimeout: b.responseHeaderTimeout,
	}

	if !b.allowPrivate {
		transport.DialContext = (&net.Dialer{
			Control: protectedDialerControl,
		}).DialContext
	}

	if b.caCertPath != "" {
		caCert, err := os.ReadFile(b.caCertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate bundle: %w", err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate bundle")
		}

		transport.TLSClientConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			RootCAs:    caCertPool,
		}
	}

	maxRedirects := b.maxRedirects
	client := &http.Client{
		Transport: &ValidatingTransport{
			Transport:      transport,
			AllowPlainHTTP: b.allowPrivate,
		},
		Timeout: b.clientTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects fetching %s", maxRedirects, via[0].URL.String())
			}
			return nil
		},
	}

	return client, nil
}
