package transport

import (
	"context"

	"nightreport/internal/identity"
	"nightreport/internal/report"
)

// envelope wraps the report for the current protocol: the device key travels
// as the single positional argument.
type envelope struct {
	Args []string     `json:"args"`
	Data *report.Body `json:"data"`
}

// Current posts {"args": [key], "data": body} to /dev/<hostname>/report and
// decodes an optional {"text": ...} reply.
type Current struct {
	c *client
}

// NewCurrent returns a Current transport.
func NewCurrent(endpoint string, opts ...Option) (*Current, error) {
	if endpoint == "" {
		endpoint = CurrentEndpoint
	}
	c, err := newClient(endpoint, CurrentTimeout, opts)
	if err != nil {
		return nil, err
	}
	return &Current{c: c}, nil
}

func (cu *Current) Send(ctx context.Context, id identity.Identity, body *report.Body) (*Reply, error) {
	if body == nil {
		body = report.NewBody()
	}
	payload := envelope{Args: []string{id.Key}, Data: body}
	return cu.c.post(ctx, cu.c.endpointURL("dev", id.Hostname, "report"), payload, true)
}

func (cu *Current) SendCron(ctx context.Context, id identity.Identity, job string, status *int) (*Reply, error) {
	payload := envelope{
		Args: []string{id.Key},
		Data: report.NewBody().Set("status", report.IntPtr(status)),
	}
	return cu.c.post(ctx, cu.c.endpointURL("dev", id.Hostname, "cron", job), payload, true)
}
