package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"nightreport/internal/collector"
	"nightreport/internal/identity"
	"nightreport/internal/sysinfo"
	"nightreport/internal/transport"
	"nightreport/pkg/config"
)

// NewRunContext resolves the identity, builds the enabled collectors and the
// configured transport. Everything that can fail before the network does so
// here.
func NewRunContext(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...transport.Option) (*RunContext, error) {
	info, err := sysinfo.Collect(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("node", info.Hostname).
		Str("platform", string(info.Platform)).
		Str("distro", info.Distro).
		Str("version", info.Version).
		Msg("system info")

	id, err := identity.Resolve(ctx, cfg, info.NodeName)
	if err != nil {
		return nil, err
	}

	tr, err := transport.New(cfg.Protocol, cfg.Endpoint, opts...)
	if err != nil {
		return nil, &config.ConfigurationError{Path: cfg.Path, Err: err}
	}

	return &RunContext{
		Identity:   id,
		Collectors: collector.Build(cfg, collector.Deps{Platform: info.Platform}),
		Transport:  tr,
		Stdout:     os.Stdout,
		Log:        log,
	}, nil
}

// CollectorsFor builds the enabled collectors for the local platform without
// resolving an identity or transport.
func CollectorsFor(ctx context.Context, cfg *config.Config) ([]collector.Collector, error) {
	info, err := sysinfo.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting system info: %w", err)
	}
	return collector.Build(cfg, collector.Deps{Platform: info.Platform}), nil
}
