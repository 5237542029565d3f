package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"netstate-agent/internal/domain/interfaces"
)

// RealCommandLocator is a CommandLocator that resolves executables on the filesystem.
// With a non-empty target it probes under that root instead of the live system,
// so an offline image can be inspected without chrooting into it.
type RealCommandLocator struct{}

// NewRealCommandLocator creates a new RealCommandLocator
func NewRealCommandLocator() interfaces.CommandLocator {
	return &RealCommandLocator{}
}

// Which looks for an executable file in the given search paths under target.
// Empty searchPaths falls back to the PATH environment variable.
func (l *RealCommandLocator) Which(tool string, searchPaths []string, target string) string {
	if len(searchPaths) == 0 {
		searchPaths = filepath.SplitList(os.Getenv("PATH"))
	}

	for _, dir := range searchPaths {
		candidate := filepath.Join(TargetPath(target, dir), tool)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0111 != 0 {
			return candidate
		}
	}

	return ""
}

// TargetPath resolves a path under an optional alternate root.
// An empty or "/" target returns the path as an absolute live-system path.
func TargetPath(target, path string) string {
	path = strings.TrimPrefix(path, "/")
	if target == "" || target == "/" {
		return "/" + path
	}
	return filepath.Join(target, path)
}
