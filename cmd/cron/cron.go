// Package cron runs a scheduled job and reports its exit status.
package cron

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"nightreport/internal/pipeline"
	"nightreport/internal/transport"
	"nightreport/pkg/config"
	"nightreport/pkg/logger"
)

// Run executes argv with inherited stdio, then reports its exit status under
// job. A command that cannot be started is an error and nothing is sent.
func Run(configPath, version, job string, argv []string) error {
	if len(argv) == 0 {
		return errors.New("no command given")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.Init(cfg.LogLevel)

	rc, err := pipeline.NewRunContext(context.Background(), cfg, log, transport.WithUserAgent(transport.UserAgent(version)))
	if err != nil {
		return err
	}

	status, err := Exec(argv)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pipeline.RunCron(ctx, rc, job, status); err != nil {
		return fmt.Errorf("reporting job %s: %w", job, err)
	}
	return nil
}

// Exec runs argv to completion with the reporter's stdio. The status is nil
// when the command was killed by a signal.
func Exec(argv []string) (*int, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		code := 0
		return &code, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("running %s: %w", argv[0], err)
	}
	code := exitErr.ExitCode()
	if code < 0 {
		return nil, nil
	}
	return &code, nil
}
