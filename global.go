package walk

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-git/go-git/v5/config"
)

// globalIgnorePath resolves the user's global git ignore file:
//
//  1. core.excludesfile from the global git configuration
//  2. $XDG_CONFIG_HOME/git/ignore (which itself defaults to
//     ~/.config/git/ignore)
//
// The returned path is not required to exist; callers treat a missing file
// as "no global patterns".
func globalIgnorePath() (string, error) {
	if cfg, err := config.LoadConfig(config.GlobalScope); err == nil {
		if p := cfg.Raw.Section("core").Option("excludesfile"); p != "" {
			return expandTilde(p)
		}
	}

	return filepath.Join(xdg.ConfigHome, "git", "ignore"), nil
}

// expandTilde expands ~ and ~user prefixes in a path.
func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	var userPart, rest string
	if i := strings.IndexByte(path, '/'); i >= 0 {
		userPart = path[:i]
		rest = path[i:]
	} else {
		userPart = path
	}

	var homeDir string
	if userPart == "~" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~: %w", err)
		}
		homeDir = dir
	} else {
		u, err := user.Lookup(userPart[1:])
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", userPart, err)
		}
		homeDir = u.HomeDir
	}

	return homeDir + rest, nil
}
