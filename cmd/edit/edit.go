// Package edit opens the config record in the user's editor.
package edit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const defaultConfigTemplate = `{
  "deviceKey": "",
  "root": true,
  "protocol": "current",
  "toolStrategy": "invoke",
  "collectors": {
    "cronApt": true,
    "needrestart": true,
    "inodes": false
  },
  "logLevel": "warn"
}
`

// Run opens path in $EDITOR, creating it from a template if it does not
// exist yet.
func Run(path string) error {
	if err := ensureFile(path); err != nil {
		return err
	}

	editor, err := findEditor(os.Getenv("EDITOR"), exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// ensureFile creates path and its directory with the default template. An
// existing file is left untouched.
func ensureFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Creating new config file at %s...\n", path)
		if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o600); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}
	return nil
}

func findEditor(env string, lookPath func(string) (string, error)) (string, error) {
	if env != "" {
		return env, nil
	}
	for _, e := range []string{"vi", "nano", "vim"} {
		if _, err := lookPath(e); err == nil {
			return e, nil
		}
	}
	return "", fmt.Errorf("no editor found ($EDITOR environment variable not set, and vi/nano/vim not in PATH)")
}
