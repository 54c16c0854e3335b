// Package report implements the default night-device-report action: collect
// the device facts and send them to the collection endpoint.
package report

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"nightreport/internal/pipeline"
	"nightreport/internal/transport"
	"nightreport/pkg/config"
	"nightreport/pkg/logger"
)

// Run loads the config record and sends one device report.
func Run(configPath, version string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rc, err := pipeline.NewRunContext(ctx, cfg, log, transport.WithUserAgent(transport.UserAgent(version)))
	if err != nil {
		return err
	}

	log.Debug().
		Str("config", cfg.Path).
		Str("protocol", cfg.Protocol).
		Int("collectors", len(rc.Collectors)).
		Msg("starting report")

	if err := pipeline.Run(ctx, rc); err != nil {
		return fmt.Errorf("reporting: %w", err)
	}
	return nil
}
