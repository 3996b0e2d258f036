package diagfmt

import (
	"path"
	"strings"
)

const autoPathLimit = 40

func displayName(name string, mode PathMode) string {
	switch mode {
	case PathModeAsIs:
		return name
	case PathModeBasename:
		return baseName(name)
	}
	if len(name) > autoPathLimit {
		return baseName(name)
	}
	return name
}

func baseName(name string) string {
	if name == "" || strings.HasPrefix(name, "<") {
		return name
	}
	return path.Base(strings.ReplaceAll(name, "\\", "/"))
}
