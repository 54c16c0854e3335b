package collector

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"nightreport/internal/report"
	"nightreport/internal/sysinfo"
)

const (
	needrestartPath   = "/usr/sbin/needrestart"
	needsrebootTool   = "nixos-needsreboot"
	kernelStatusLabel = "NEEDRESTART-KSTA: "
)

// Kernel status codes as reported by needrestart -b.
const (
	KernelStatusUnknown        = 0
	KernelStatusCurrent        = 1
	KernelStatusABIUpgrade     = 2
	KernelStatusVersionUpgrade = 3
)

// Needrestart reports the kernel restart status from needrestart's batch
// output. The field is null when the status cannot be determined, and
// omitted when the Locator says the tool is absent.
type Needrestart struct {
	Path     string
	Root     bool
	Platform sysinfo.Platform
	Locator  ToolLocator
	Runner   Runner
}

// NewNeedrestart returns a Needrestart collector using the given tool policy.
func NewNeedrestart(root bool, platform sysinfo.Platform, locator ToolLocator, runner Runner) *Needrestart {
	if locator == nil {
		locator = FixedLocator{}
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Needrestart{
		Path:     needrestartPath,
		Root:     root,
		Platform: platform,
		Locator:  locator,
		Runner:   runner,
	}
}

func (n *Needrestart) Name() string   { return "needrestart" }
func (n *Needrestart) Critical() bool { return false }

func (n *Needrestart) Collect(ctx context.Context) (*report.Body, error) {
	if !n.Root {
		return field(report.Null()), nil
	}

	switch n.Platform {
	case sysinfo.PlatformMacOS:
		// The macOS update workflow always reboots.
		return field(report.Int(KernelStatusCurrent)), nil
	case sysinfo.PlatformNixOS:
		return n.collectNixOS(ctx)
	}

	path, err := n.Locator.Locate(n.Path)
	if err != nil {
		return report.NewBody(), nil
	}

	out, err := n.Runner.Output(ctx, path, "-b")
	if err != nil {
		return field(report.Null()), toolError(path, err)
	}

	status, err := ParseKernelStatus(out)
	if err != nil {
		return field(report.Null()), &ToolInvocationError{Tool: path, Err: err}
	}
	return field(report.IntPtr(status)), nil
}

func (n *Needrestart) collectNixOS(ctx context.Context) (*report.Body, error) {
	path, err := n.Locator.Locate(needsrebootTool)
	if err != nil {
		return report.NewBody(), nil
	}

	code, err := n.Runner.Status(ctx, path)
	if err != nil {
		return field(report.Null()), toolError(path, err)
	}

	switch code {
	case 0:
		return field(report.Int(KernelStatusCurrent)), nil
	case 2:
		return field(report.Int(KernelStatusABIUpgrade)), nil
	default:
		return field(report.Int(KernelStatusUnknown)),
			&ToolInvocationError{Tool: path, Err: fmt.Errorf("exited with status %d", code)}
	}
}

// ParseKernelStatus returns the status code from the first NEEDRESTART-KSTA
// line of needrestart -b output, or nil when there is none.
func ParseKernelStatus(out []byte) (*int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		rest, ok := strings.CutPrefix(scanner.Text(), kernelStatusLabel)
		if !ok {
			continue
		}
		status, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return nil, fmt.Errorf("parsing kernel status %q: %w", rest, err)
		}
		return &status, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

func field(v report.Value) *report.Body {
	return report.NewBody().Set("needrestart", v)
}

// toolError classifies a failed tool run. A tool that is not installed is
// the normal case on most machines and reports null without an error.
func toolError(path string, err error) error {
	if isNotFound(err) {
		return nil
	}
	return &ToolInvocationError{Tool: path, Err: err}
}
