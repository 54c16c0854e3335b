package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/http2"
)

const maxReplySize = 1 << 20

// Option configures a Transport.
type Option func(*options)

type options struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// WithHTTPClient sends requests through c. The transport timeout is applied
// to a copy when c has none.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithTimeout overrides the protocol's request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// client posts JSON documents to one endpoint.
type client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

func newClient(endpoint string, defaultTimeout time.Duration, opts []Option) (*client, error) {
	o := options{timeout: defaultTimeout, userAgent: UserAgent("dev")}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q: only https endpoints are supported", endpoint)
	}

	var hc *http.Client
	if o.client != nil {
		copied := *o.client
		if copied.Timeout == 0 {
			copied.Timeout = o.timeout
		}
		hc = &copied
	} else {
		hc, err = newHTTPClient(o.timeout)
		if err != nil {
			return nil, err
		}
	}

	return &client{
		baseURL:   strings.TrimRight(endpoint, "/"),
		http:      hc,
		userAgent: o.userAgent,
	}, nil
}

func newHTTPClient(timeout time.Duration) (*http.Client, error) {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		TLSHandshakeTimeout:   10 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, fmt.Errorf("configuring http2: %w", err)
	}
	return &http.Client{Transport: tr, Timeout: timeout}, nil
}

// endpointURL joins the escaped path segments onto the base URL.
func (c *client) endpointURL(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// post sends payload as JSON. When decodeReply is set, a non-empty 2xx body
// is decoded into a Reply.
func (c *client) post(ctx context.Context, target string, payload any, decodeReply bool) (*Reply, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("reading reply: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteRejectionError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	reply := &Reply{}
	if !decodeReply || len(bytes.TrimSpace(body)) == 0 {
		return reply, nil
	}
	if err := json.Unmarshal(body, reply); err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("decoding reply: %w", err)}
	}
	return reply, nil
}
