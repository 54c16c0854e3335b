// Package sysinfo collects the local machine facts identity and collectors
// depend on: the network node name and the operating system flavour.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Platform identifies the operating system family a collector may need to
// special-case.
type Platform string

const (
	PlatformDebian Platform = "debian"
	PlatformNixOS  Platform = "nixos"
	PlatformMacOS  Platform = "macos"
	PlatformOther  Platform = "other"
)

// SystemInfo holds all collected system information.
type SystemInfo struct {
	Hostname string
	OS       string
	Platform Platform
	Distro   string
	Version  string
	Kernel   string
}

// Collect gathers local system information and returns a SystemInfo struct.
// Only the node name is required; missing OS details degrade to PlatformOther.
func Collect(ctx context.Context) (*SystemInfo, error) {
	info := &SystemInfo{OS: runtime.GOOS}

	hostInfo, err := host.InfoWithContext(ctx)
	if err == nil {
		info.Hostname = hostInfo.Hostname
		info.Kernel = hostInfo.KernelVersion
		info.Distro = hostInfo.Platform
		info.Version = hostInfo.PlatformVersion
		if hostInfo.OS != "" {
			info.OS = hostInfo.OS
		}
	}

	if info.Hostname == "" {
		name, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("resolving node name: %w", err)
		}
		info.Hostname = name
	}

	info.Platform = classify(info.OS, info.Distro)

	return info, nil
}

// NodeName returns the collected network node name. Its signature matches
// identity.NodeNameFunc.
func (s *SystemInfo) NodeName(context.Context) (string, error) {
	if s.Hostname == "" {
		return "", errors.New("node name unavailable")
	}
	return s.Hostname, nil
}

func classify(goos, distro string) Platform {
	if goos == "darwin" {
		return PlatformMacOS
	}
	switch strings.ToLower(distro) {
	case "nixos":
		return PlatformNixOS
	case "debian", "ubuntu", "raspbian":
		return PlatformDebian
	}
	// Anything that is not NixOS is treated like Debian by the collectors;
	// PlatformOther only records that the distribution was not recognised.
	return PlatformOther
}
