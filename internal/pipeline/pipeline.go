// Package pipeline runs one report: collect, assemble, send, print reply.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"nightreport/internal/collector"
	"nightreport/internal/identity"
	"nightreport/internal/report"
	"nightreport/internal/transport"
)

// RunContext is everything one run needs. It is built once at startup and
// not modified afterwards.
type RunContext struct {
	Identity   identity.Identity
	Collectors []collector.Collector
	Transport  transport.Transport
	Stdout     io.Writer
	Log        zerolog.Logger
}

// Collect runs the collectors in order and assembles their fields. A
// critical failure aborts with a *collector.CollectorFatalError; other
// failures are logged and their fallback fields kept.
func Collect(ctx context.Context, collectors []collector.Collector, log zerolog.Logger) (*report.Body, error) {
	parts := make([]*report.Body, 0, len(collectors))
	for _, c := range collectors {
		body, err := collector.Run(ctx, c)
		if err != nil {
			var fatal *collector.CollectorFatalError
			if errors.As(err, &fatal) {
				return nil, err
			}
			log.Warn().Err(err).Str("collector", c.Name()).Msg("collector failed, reporting fallback values")
		}
		log.Debug().Str("collector", c.Name()).Int("fields", body.Len()).Msg("collected")
		parts = append(parts, body)
	}
	return report.Assemble(parts...), nil
}

// Run collects a report, sends it and prints the reply text, if any.
func Run(ctx context.Context, rc *RunContext) error {
	body, err := Collect(ctx, rc.Collectors, rc.Log)
	if err != nil {
		return err
	}

	rc.Log.Info().
		Str("hostname", rc.Identity.Hostname).
		Int("fields", body.Len()).
		Msg("sending report")

	reply, err := rc.Transport.Send(ctx, rc.Identity, body)
	if err != nil {
		return err
	}
	return printReply(rc.Stdout, reply)
}

// RunCron sends the exit status of a scheduled job and prints the reply.
func RunCron(ctx context.Context, rc *RunContext, job string, status *int) error {
	ev := rc.Log.Info().Str("hostname", rc.Identity.Hostname).Str("job", job)
	if status != nil {
		ev = ev.Int("status", *status)
	}
	ev.Msg("sending job status")

	reply, err := rc.Transport.SendCron(ctx, rc.Identity, job, status)
	if err != nil {
		return err
	}
	return printReply(rc.Stdout, reply)
}

func printReply(w io.Writer, reply *transport.Reply) error {
	if reply == nil || reply.Text == "" {
		return nil
	}
	if _, err := fmt.Fprintln(w, reply.Text); err != nil {
		return fmt.Errorf("printing reply: %w", err)
	}
	return nil
}
