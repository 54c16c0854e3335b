// Package transport sends device reports to the collection endpoint. Each
// wire-protocol revision is a Transport implementation selected by config.
package transport

import (
	"context"
	"fmt"
	"time"

	"nightreport/internal/identity"
	"nightreport/internal/report"
	"nightreport/pkg/config"
)

// UserAgent returns the User-Agent header value for a reporter version.
func UserAgent(version string) string {
	return "night-device-report/" + version
}

// Default endpoints per protocol revision.
const (
	LegacyEndpoint  = "https://nightd.fenhl.net"
	CurrentEndpoint = "https://night.fenhl.net"
)

// Request timeouts per protocol revision.
const (
	LegacyTimeout  = 600 * time.Second
	CurrentTimeout = 60050 * time.Millisecond
)

// Reply is the endpoint's optional response document.
type Reply struct {
	Text string `json:"text"`
}

// Transport delivers reports for one device.
type Transport interface {
	// Send delivers a device report body.
	Send(ctx context.Context, id identity.Identity, body *report.Body) (*Reply, error)

	// SendCron delivers the exit status of a scheduled job. A nil status
	// means the job was killed by a signal.
	SendCron(ctx context.Context, id identity.Identity, job string, status *int) (*Reply, error)
}

// New returns the Transport for protocol. An empty endpoint selects the
// protocol's default.
func New(protocol, endpoint string, opts ...Option) (Transport, error) {
	switch protocol {
	case config.ProtocolLegacy:
		return NewLegacy(endpoint, opts...)
	case config.ProtocolCurrent, "":
		return NewCurrent(endpoint, opts...)
	default:
		return nil, fmt.Errorf("unknown protocol %q", protocol)
	}
}
