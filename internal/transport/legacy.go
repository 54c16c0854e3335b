package transport

import (
	"context"

	"nightreport/internal/identity"
	"nightreport/internal/report"
)

// Legacy posts a flat JSON object with the device key under "key" to
// /device-report/<hostname>. The reply body is not consumed.
type Legacy struct {
	c *client
}

// NewLegacy returns a Legacy transport.
func NewLegacy(endpoint string, opts ...Option) (*Legacy, error) {
	if endpoint == "" {
		endpoint = LegacyEndpoint
	}
	c, err := newClient(endpoint, LegacyTimeout, opts)
	if err != nil {
		return nil, err
	}
	return &Legacy{c: c}, nil
}

func (l *Legacy) Send(ctx context.Context, id identity.Identity, body *report.Body) (*Reply, error) {
	payload := report.NewBody().Set("key", report.String(id.Key)).Merge(body)
	return l.c.post(ctx, l.c.endpointURL("device-report", id.Hostname), payload, false)
}

func (l *Legacy) SendCron(ctx context.Context, id identity.Identity, job string, status *int) (*Reply, error) {
	payload := report.NewBody().
		Set("key", report.String(id.Key)).
		Set("status", report.IntPtr(status))
	return l.c.post(ctx, l.c.endpointURL("device-report", id.Hostname, job), payload, false)
}
