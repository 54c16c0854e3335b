// Package collect runs the collectors and writes the assembled report body
// locally instead of sending it.
package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"nightreport/internal/pipeline"
	"nightreport/pkg/config"
	"nightreport/pkg/logger"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Options control where and how the body is written.
type Options struct {
	OutputFile string
	Format     string
}

// Run collects a report body and writes it to stdout or opts.OutputFile.
func Run(configPath string, opts Options) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.Init(cfg.LogLevel)
	ctx := context.Background()

	collectors, err := pipeline.CollectorsFor(ctx, cfg)
	if err != nil {
		return err
	}

	body, err := pipeline.Collect(ctx, collectors, log)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if opts.OutputFile != "" {
		f, err := os.Create(opts.OutputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := Write(w, body, opts.Format); err != nil {
		return err
	}

	if opts.OutputFile != "" {
		log.Info().Str("path", opts.OutputFile).Msg("report written")
	}
	return nil
}

// Write encodes v to w in format. JSON is indented for reading.
func Write(w io.Writer, v any, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSON, FormatMsgpack)
	}
	return nil
}
