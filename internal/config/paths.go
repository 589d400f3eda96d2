package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands a leading ~ and any environment variables in a
// configured path.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return expanded
	}
	if strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, expanded[2:])
		}
	}
	return expanded
}

// findUserConfigFile returns the user-level config file path, or ""
// when none exists. ~/.taskli/taskli.toml wins over the OS config dir.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".taskli", "taskli.toml")
		if fileExists(p) {
			return p
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "taskli", "taskli.toml")
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// findProjectConfigFile returns the per-directory config file path, or
// "" when none exists in the current directory.
func findProjectConfigFile() string {
	for _, name := range []string{"taskli.toml", ".taskli.toml"} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
