package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
)

// ErrToolNotFound is returned when an external tool is not installed.
var ErrToolNotFound = errors.New("tool not found")

// ToolInvocationError is an external helper tool that is absent or exited
// abnormally. Collectors absorb it into a null field.
type ToolInvocationError struct {
	Tool string
	Err  error
}

func (e *ToolInvocationError) Error() string {
	return fmt.Sprintf("running %s: %v", e.Tool, e.Err)
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

// NotFound reports whether the tool binary is missing.
func (e *ToolInvocationError) NotFound() bool {
	return isNotFound(e.Err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrToolNotFound) || errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// ToolLocator decides whether an external tool is available before it is
// invoked.
type ToolLocator interface {
	Locate(tool string) (string, error)
}

// DefaultExtraDirs hold admin tools that are often missing from a
// non-root PATH.
var DefaultExtraDirs = []string{"/usr/sbin"}

// LookPathLocator probes for the tool by base name on PATH, then at the
// given path itself, then in ExtraDirs (DefaultExtraDirs when nil). It
// reports ErrToolNotFound when no executable is found.
type LookPathLocator struct {
	ExtraDirs []string
}

func (l LookPathLocator) Locate(tool string) (string, error) {
	name := filepath.Base(tool)
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	extra := l.ExtraDirs
	if extra == nil {
		extra = DefaultExtraDirs
	}
	var candidates []string
	if filepath.IsAbs(tool) {
		candidates = append(candidates, tool)
	}
	for _, dir := range extra {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", tool, ErrToolNotFound)
}

// FixedLocator never probes: the tool is assumed present and a missing
// binary surfaces when it is invoked.
type FixedLocator struct{}

func (FixedLocator) Locate(tool string) (string, error) { return tool, nil }

// Runner runs external tools.
type Runner interface {
	// Output runs the tool and returns its stdout. Stderr is discarded.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Status runs the tool and returns its exit code. An error means the
	// tool could not be run or was killed by a signal.
	Status(ctx context.Context, name string, args ...string) (int, error)
}

// ExecRunner runs tools with os/exec.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	return stdout.Bytes(), err
}

func (ExecRunner) Status(ctx context.Context, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
