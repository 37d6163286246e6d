package vellum

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version returns the module version, without the leading "v".
func Version() string { return strings.TrimSpace(rawVersion) }

// VersionTag returns the git tag form of Version.
func VersionTag() string { return "v" + Version() }

// ParseVersion splits a SemVer string into its release numbers. A leading
// "v" and any pre-release or build suffix are accepted and discarded.
func ParseVersion(v string) (major, minor, patch int, err error) {
	core := strings.TrimSpace(strings.TrimPrefix(v, "v"))
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("vellum: malformed version %q", v)
	}
	var nums [3]int
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 || (len(p) > 1 && p[0] == '0') {
			return 0, 0, 0, fmt.Errorf("vellum: malformed version %q", v)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}
