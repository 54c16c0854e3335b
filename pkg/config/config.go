// Package config provides configuration record loading for night-device-report.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Wire protocol revisions.
const (
	ProtocolCurrent = "current"
	ProtocolLegacy  = "legacy"
)

// External tool strategies. Invoke runs the tool at its fixed path and
// treats not-found as null; probe looks the tool up first and omits its
// field when absent.
const (
	StrategyInvoke = "invoke"
	StrategyProbe  = "probe"
)

var (
	// ErrNotFound is returned when no config file exists on the search path.
	ErrNotFound = errors.New("config file not found")
	// ErrMissingDeviceKey is returned when the record has no deviceKey.
	ErrMissingDeviceKey = errors.New("deviceKey is required")
	// ErrInsecureEndpoint is returned for endpoint overrides that are not https.
	ErrInsecureEndpoint = errors.New("endpoint must be an https URL")
)

// ConfigurationError reports a missing, unreadable, malformed or incomplete
// configuration record. It is always fatal.
type ConfigurationError struct {
	Path     string
	Searched []string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		if len(e.Searched) > 0 {
			return fmt.Sprintf("%v (searched: %s)", e.Err, strings.Join(e.Searched, ", "))
		}
		return e.Err.Error()
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Config is the configuration record.
type Config struct {
	DeviceKey    string           `json:"deviceKey" toml:"deviceKey"`
	Hostname     string           `json:"hostname" toml:"hostname"`
	Root         bool             `json:"root" toml:"root"`
	Protocol     string           `json:"protocol" toml:"protocol"`
	Endpoint     string           `json:"endpoint" toml:"endpoint"`
	ToolStrategy string           `json:"toolStrategy" toml:"toolStrategy"`
	Collectors   CollectorsConfig `json:"collectors" toml:"collectors"`
	OldConfFiles []string         `json:"oldconffiles" toml:"oldconffiles"`
	LogLevel     string           `json:"logLevel" toml:"logLevel"`

	// Path is the file the record was read from.
	Path string `json:"-" toml:"-"`
}

// CollectorsConfig toggles the optional collectors. Disk usage is always on.
type CollectorsConfig struct {
	CronApt     bool `json:"cronApt" toml:"cronApt"`
	Needrestart bool `json:"needrestart" toml:"needrestart"`
	Inodes      bool `json:"inodes" toml:"inodes"`
}

func newDefault() *Config {
	return &Config{
		Root:         true,
		Protocol:     ProtocolCurrent,
		ToolStrategy: StrategyInvoke,
		Collectors: CollectorsConfig{
			CronApt:     true,
			Needrestart: true,
		},
		LogLevel: "warn",
	}
}

// Load reads the config record at path, or discovers it on the XDG search
// path when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := Discover(SearchDirs())
		if err != nil {
			return nil, err
		}
		path = found
	}
	return LoadFile(ExpandPath(path))
}

// LoadFile reads and parses a config file. Files ending in .toml are decoded
// as TOML, everything else as JSON. Defaults apply to absent keys.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("reading: %w", err)}
	}

	cfg := newDefault()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = json.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	}
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("parsing: %w", err)}
	}

	applyDefaults(cfg)
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	return cfg, nil
}

// Validate checks the record for values the run cannot proceed without.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.DeviceKey) == "" {
		return ErrMissingDeviceKey
	}

	switch cfg.Protocol {
	case ProtocolCurrent, ProtocolLegacy:
	default:
		return fmt.Errorf("unknown protocol %q (want %q or %q)", cfg.Protocol, ProtocolCurrent, ProtocolLegacy)
	}

	switch cfg.ToolStrategy {
	case StrategyInvoke, StrategyProbe:
	default:
		return fmt.Errorf("unknown toolStrategy %q (want %q or %q)", cfg.ToolStrategy, StrategyInvoke, StrategyProbe)
	}

	if cfg.Endpoint != "" {
		u, err := url.Parse(cfg.Endpoint)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInsecureEndpoint, cfg.Endpoint)
		}
	}
	return nil
}

// ExpandPath expands tilde (~) to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}

func applyDefaults(cfg *Config) {
	if cfg.Protocol == "" {
		cfg.Protocol = ProtocolCurrent
	}
	if cfg.ToolStrategy == "" {
		cfg.ToolStrategy = StrategyInvoke
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
}
