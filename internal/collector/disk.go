package collector

import (
	"context"
	"math"

	"github.com/shirou/gopsutil/v3/disk"

	"nightreport/internal/report"
)

// UsageFunc returns filesystem statistics for the filesystem mounted at path.
type UsageFunc func(ctx context.Context, path string) (*disk.UsageStat, error)

// Disk reports total and available bytes of the root filesystem. Disk stats
// are always expected to be available, so a failure is fatal.
type Disk struct {
	Path  string
	Usage UsageFunc
}

// NewDisk returns a Disk collector for the root filesystem.
func NewDisk(usage UsageFunc) *Disk {
	if usage == nil {
		usage = disk.UsageWithContext
	}
	return &Disk{Path: "/", Usage: usage}
}

func (d *Disk) Name() string   { return "disk" }
func (d *Disk) Critical() bool { return true }

func (d *Disk) Collect(ctx context.Context) (*report.Body, error) {
	stat, err := d.Usage(ctx, d.Path)
	if err != nil {
		return nil, err
	}

	total := clampInt64(stat.Total)
	free := clampInt64(stat.Free)
	if free > total {
		free = total
	}
	return report.NewBody().
		Set("diskspaceTotal", report.Int(total)).
		Set("diskspaceFree", report.Int(free)), nil
}

// Inodes reports total and free inodes of the root filesystem.
type Inodes struct {
	Path  string
	Usage UsageFunc
}

// NewInodes returns an Inodes collector for the root filesystem.
func NewInodes(usage UsageFunc) *Inodes {
	if usage == nil {
		usage = disk.UsageWithContext
	}
	return &Inodes{Path: "/", Usage: usage}
}

func (i *Inodes) Name() string   { return "inodes" }
func (i *Inodes) Critical() bool { return false }

func (i *Inodes) Collect(ctx context.Context) (*report.Body, error) {
	stat, err := i.Usage(ctx, i.Path)
	if err != nil {
		return report.NewBody().
			Set("inodesTotal", report.Null()).
			Set("inodesFree", report.Null()), err
	}

	total := clampInt64(stat.InodesTotal)
	free := clampInt64(stat.InodesFree)
	if free > total {
		free = total
	}
	return report.NewBody().
		Set("inodesTotal", report.Int(total)).
		Set("inodesFree", report.Int(free)), nil
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
