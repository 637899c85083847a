package platform

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// OSReleasePath is where systemd-era distributions describe themselves
const OSReleasePath = "/etc/os-release"

// Distro identifies a Linux distribution from os-release
type Distro struct {
	ID     string // e.g. "fedora", lowercased
	IDLike string // space separated parents, e.g. "rhel fedora", lowercased
}

// Is reports whether the distro is, or derives from, one of ids
func (d Distro) Is(ids ...string) bool {
	for _, id := range ids {
		if d.ID == id || strings.Contains(d.IDLike, id) {
			return true
		}
	}
	return false
}

// DetectDistro reads path (normally OSReleasePath). Detection is
// best-effort: an unreadable file yields an empty Distro.
func DetectDistro(path string) Distro {
	f, err := os.Open(path)
	if err != nil {
		return Distro{}
	}
	defer f.Close()
	return ParseOSRelease(f)
}

// ParseOSRelease extracts ID and ID_LIKE from os-release content
func ParseOSRelease(r io.Reader) Distro {
	var d Distro
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.ToLower(strings.Trim(strings.TrimSpace(value), `"'`))
		switch key {
		case "ID":
			d.ID = value
		case "ID_LIKE":
			d.IDLike = value
		}
	}
	return d
}
