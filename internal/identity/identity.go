// Package identity resolves the device identity a report is addressed by.
package identity

import (
	"context"
	"fmt"
	"strings"

	"nightreport/pkg/config"
)

// Identity is the (device key, hostname) pair for one run.
type Identity struct {
	Key      string
	Hostname string
}

// NodeNameFunc returns the local network node name.
type NodeNameFunc func(ctx context.Context) (string, error)

// Resolve builds the Identity from the config record. The hostname override
// wins when set; otherwise the node name is shortened to its first label.
func Resolve(ctx context.Context, cfg *config.Config, nodeName NodeNameFunc) (Identity, error) {
	if strings.TrimSpace(cfg.DeviceKey) == "" {
		return Identity{}, &config.ConfigurationError{Path: cfg.Path, Err: config.ErrMissingDeviceKey}
	}

	id := Identity{Key: cfg.DeviceKey, Hostname: cfg.Hostname}
	if id.Hostname != "" {
		return id, nil
	}

	name, err := nodeName(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("resolving hostname: %w", err)
	}
	id.Hostname = ShortHostname(name)
	if id.Hostname == "" {
		return Identity{}, fmt.Errorf("resolving hostname: empty node name %q", name)
	}
	return id, nil
}

// ShortHostname returns the part of name before the first '.'.
func ShortHostname(name string) string {
	short, _, _ := strings.Cut(name, ".")
	return short
}
