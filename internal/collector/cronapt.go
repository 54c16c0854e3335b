package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"nightreport/internal/report"
	"nightreport/internal/sysinfo"
)

// Syslog markers written by cron-apt.
var (
	markerDownloaded = []byte("cron-apt: Download complete and in download only mode")
	markerUpToDate   = []byte("cron-apt: 0 upgraded, 0 newly installed, 0 to remove and 0 not upgraded.")
)

// DefaultSyslogs are scanned in order: the live log, then its rotated predecessor.
var DefaultSyslogs = []string{"/var/log/syslog", "/var/log/syslog.1"}

// CronApt reports whether cron-apt has downloaded upgrades that are not yet
// installed. The most recent marker wins; no marker means false.
type CronApt struct {
	Logs     []string
	Root     bool
	Platform sysinfo.Platform
}

// NewCronApt returns a CronApt collector over the default syslogs.
func NewCronApt(root bool, platform sysinfo.Platform) *CronApt {
	return &CronApt{
		Logs:     append([]string(nil), DefaultSyslogs...),
		Root:     root,
		Platform: platform,
	}
}

func (c *CronApt) Name() string   { return "cronApt" }
func (c *CronApt) Critical() bool { return false }

func (c *CronApt) Collect(ctx context.Context) (*report.Body, error) {
	pending, err := c.pending()
	return report.NewBody().Set("cronApt", report.Bool(pending)), err
}

func (c *CronApt) pending() (bool, error) {
	// System updates are root's business, and NixOS installs them automatically.
	if !c.Root || c.Platform == sysinfo.PlatformNixOS {
		return false, nil
	}

	for _, path := range c.Logs {
		pending, found, err := scanCronAptLog(path)
		if err != nil {
			return false, err
		}
		if found {
			return pending, nil
		}
	}
	return false, nil
}

// scanCronAptLog reads path newest line first and reports the first cron-apt
// marker. A missing file is not an error.
func scanCronAptLog(path string) (pending, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("reading %s: %w", path, err)
	}

	lines := bytes.Split(data, []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		switch {
		case bytes.Contains(lines[i], markerDownloaded):
			return true, true, nil
		case bytes.Contains(lines[i], markerUpToDate):
			return false, true, nil
		}
	}
	return false, false, nil
}
