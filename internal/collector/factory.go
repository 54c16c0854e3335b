package collector

import (
	"nightreport/internal/sysinfo"
	"nightreport/pkg/config"
)

// Deps are the machine-facing hooks collectors are built with. Zero values
// select the real implementations.
type Deps struct {
	Platform sysinfo.Platform
	Usage    UsageFunc
	Runner   Runner
	Locator  ToolLocator
}

// LocatorFor maps a config tool strategy to its ToolLocator.
func LocatorFor(strategy string) ToolLocator {
	if strategy == config.StrategyProbe {
		return LookPathLocator{}
	}
	return FixedLocator{}
}

// Build returns the collectors enabled by cfg in report order.
func Build(cfg *config.Config, deps Deps) []Collector {
	locator := deps.Locator
	if locator == nil {
		locator = LocatorFor(cfg.ToolStrategy)
	}

	collectors := []Collector{NewDisk(deps.Usage)}
	if cfg.Collectors.Inodes {
		collectors = append(collectors, NewInodes(deps.Usage))
	}
	if cfg.Collectors.CronApt {
		collectors = append(collectors, NewCronApt(cfg.Root, deps.Platform))
	}
	if cfg.Collectors.Needrestart {
		collectors = append(collectors, NewNeedrestart(cfg.Root, deps.Platform, locator, deps.Runner))
	}
	if len(cfg.OldConfFiles) > 0 {
		collectors = append(collectors, NewOldConfFiles(cfg.OldConfFiles))
	}
	return collectors
}
