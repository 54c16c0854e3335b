package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// RecordName is the config record location relative to each config directory.
const RecordName = "fenhl/night"

// RecordExtensions are tried in order within each directory.
var RecordExtensions = []string{".json", ".toml"}

// SearchDirs returns the XDG config directories in lookup order:
// $XDG_CONFIG_HOME, then $XDG_CONFIG_DIRS. Relative entries are ignored.
func SearchDirs() []string {
	candidates := append([]string{xdg.ConfigHome}, xdg.ConfigDirs...)

	dirs := make([]string, 0, len(candidates))
	for _, d := range candidates {
		if d != "" && filepath.IsAbs(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Discover returns the first existing config record under dirs. Within a
// directory JSON wins over TOML; an earlier directory wins over a later one.
func Discover(dirs []string) (string, error) {
	var searched []string
	for _, dir := range dirs {
		for _, ext := range RecordExtensions {
			path := filepath.Join(dir, RecordName+ext)
			searched = append(searched, path)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}
	return "", &ConfigurationError{Searched: searched, Err: ErrNotFound}
}

// DefaultPath returns the existing record, or where a new one is created:
// the JSON record under $XDG_CONFIG_HOME, with its directory in place.
func DefaultPath() string {
	if found, err := Discover(SearchDirs()); err == nil {
		return found
	}
	rel := RecordName + RecordExtensions[0]
	if path, err := xdg.ConfigFile(rel); err == nil {
		return path
	}
	return filepath.Join(xdg.ConfigHome, rel)
}
