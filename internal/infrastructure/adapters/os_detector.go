package adapters

import (
	"bufio"
	"strings"

	"netstate-agent/internal/domain/constants"
	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/domain/interfaces"
)

// RealOSDetector is an OSDetector implementation that reads /etc/os-release.
// The result is informational only (metrics and health payload); backend
// selection is driven by the availability probes of the registries.
type RealOSDetector struct {
	fileSystem interfaces.FileSystem
}

// NewRealOSDetector creates a new RealOSDetector
func NewRealOSDetector(fs interfaces.FileSystem) interfaces.OSDetector {
	return &RealOSDetector{
		fileSystem: fs,
	}
}

// DetectOS returns the ID field of /etc/os-release
func (d *RealOSDetector) DetectOS() (string, error) {
	releaseInfo, err := d.parseOSRelease()
	if err != nil {
		return "", errors.NewSystemError("OS detection failed: cannot read /etc/os-release file", err)
	}

	id, ok := releaseInfo["ID"]
	if !ok || id == "" {
		return "", errors.NewSystemError("OS detection failed: no ID field in /etc/os-release file", nil)
	}

	return id, nil
}

// parseOSRelease parses /etc/os-release file and returns it as a map.
func (d *RealOSDetector) parseOSRelease() (map[string]string, error) {
	content, err := d.fileSystem.ReadFile(constants.OSReleaseFile)
	if err != nil {
		return nil, err
	}

	releaseInfo := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			key := strings.TrimSpace(parts[0])
			value := strings.Trim(strings.TrimSpace(parts[1]), "\"")
			releaseInfo[key] = value
		}
	}

	return releaseInfo, nil
}
