package collector

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

type fakeRunner struct {
	out   []byte
	code  int
	err   error
	calls []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	return f.out, f.err
}

func (f *fakeRunner) Status(_ context.Context, name string, args ...string) (int, error) {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	return f.code, f.err
}

type missingLocator struct{}

func (missingLocator) Locate(tool string) (string, error) {
	return "", fmt.Errorf("%s: %w", tool, ErrToolNotFound)
}

// notExist mimics exec failing to start an absolute path that does not exist.
var notExist = &fs.PathError{Op: "fork/exec", Path: "/usr/sbin/needrestart", Err: fs.ErrNotExist}


func fixedUsage(total, free, inodesTotal, inodesFree uint64) UsageFunc {
	return func(_ context.Context, path string) (*disk.UsageStat, error) {
		return &disk.UsageStat{
			Path:        path,
			Total:       total,
			Free:        free,
			InodesTotal: inodesTotal,
			InodesFree:  inodesFree,
		}, nil
	}
}

func failingUsage(err error) UsageFunc {
	return func(context.Context, string) (*disk.UsageStat, error) {
		return nil, err
	}
}
