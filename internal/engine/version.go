// Package engine models installed Seed engine builds and the registry that
// tracks them.
//
// The registry never installs or uninstalls anything: installation is done
// out of band (by the user or a separate installer), and the Scanner observes
// the engines directory to keep the Registry in sync. Consumers read
// snapshots and subscribe to add/remove notifications.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Version identifies an engine release, e.g. "0.4.1" or "1.0.0-beta2".
// Versions are immutable values; two Versions are equal (==) iff they
// identify the same build.
type Version struct {
	major int
	minor int
	patch int
	tag   string
}

// ParseVersion parses a version string of the form MAJOR.MINOR[.PATCH][-TAG].
// A leading "v" is tolerated. The tag is an opaque suffix ("beta2", "rc1").
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	core := strings.TrimPrefix(raw, "v")

	var tag string
	if idx := strings.IndexByte(core, '-'); idx >= 0 {
		core, tag = core[:idx], core[idx+1:]
		if tag == "" {
			return Version{}, fmt.Errorf("invalid engine version %q: empty tag", s)
		}
	}

	parts := strings.Split(core, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid engine version %q: want MAJOR.MINOR[.PATCH][-TAG]", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (len(p) > 1 && p[0] == '0') {
			return Version{}, fmt.Errorf("invalid engine version %q: bad component %q", s, p)
		}
		nums[i] = n
	}

	return Version{major: nums[0], minor: nums[1], patch: nums[2], tag: tag}, nil
}

// MustParseVersion is ParseVersion that panics on error. For tests and
// compile-time constants only.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical textual form, e.g. "1.0.0-beta2".
func (v Version) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
	if v.tag != "" {
		return base + "-" + v.tag
	}
	return base
}

// IsZero reports whether v is the zero Version (no parsed value).
func (v Version) IsZero() bool {
	return v == Version{}
}

// Tag returns the pre-release tag, if any.
func (v Version) Tag() string {
	return v.tag
}

// Compare orders versions for display: numeric components first, then tagged
// builds before the untagged release with the same numbers ("1.0.0-beta2"
// sorts before "1.0.0"). Correctness never depends on this order; equality
// is the only comparison the reconciler uses.
func (v Version) Compare(o Version) int {
	switch {
	case v.major != o.major:
		return cmpInt(v.major, o.major)
	case v.minor != o.minor:
		return cmpInt(v.minor, o.minor)
	case v.patch != o.patch:
		return cmpInt(v.patch, o.patch)
	case v.tag == o.tag:
		return 0
	case v.tag == "":
		return 1
	case o.tag == "":
		return -1
	default:
		return strings.Compare(v.tag, o.tag)
	}
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	return 1
}
