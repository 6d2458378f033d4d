package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// percentVar matches a Windows-style %NAME% reference.
var percentVar = regexp.MustCompile(`%([^%\s]+)%`)

// expandPath resolves environment references and a leading ~ in a configured
// path. On Windows %NAME% references are expanded too.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p)
	}

	rest, ok := cutHome(p)
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

// cutHome returns what follows a leading ~ (alone or with a separator).
func cutHome(p string) (string, bool) {
	switch {
	case p == "~":
		return "", true
	case strings.HasPrefix(p, "~/"):
		return p[2:], true
	case runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`):
		return p[2:], true
	}
	return "", false
}

// expandPercentVars replaces %NAME% with the variable's value. Unset names
// are left as written.
func expandPercentVars(p string) string {
	return percentVar.ReplaceAllStringFunc(p, func(ref string) string {
		if val, ok := os.LookupEnv(strings.Trim(ref, "%")); ok {
			return val
		}
		return ref
	})
}
