package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the major.minor.errata version carried by a versioned Redfish
// namespace. The textual form is "v1_0_1".
type Version [3]uint64

// ParseVersion parses the "vX_Y_Z" token used in namespace names.
func ParseVersion(s string) (Version, error) {
	if len(s) < 2 || s[0] != 'v' {
		return Version{}, &InvalidVersionError{Value: s}
	}

	parts := strings.Split(s[1:], "_")
	if len(parts) != 3 {
		return Version{}, &InvalidVersionError{Value: s}
	}

	var v Version
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, &InvalidVersionError{Value: s}
		}
		v[i] = n
	}
	return v, nil
}

// Major returns the major version.
func (v Version) Major() uint64 {
	return v[0]
}

// Minor returns the minor version.
func (v Version) Minor() uint64 {
	return v[1]
}

// Errata returns the errata version.
func (v Version) Errata() uint64 {
	return v[2]
}

// String returns the namespace form of the version, e.g. "v1_0_1".
func (v Version) String() string {
	return fmt.Sprintf("v%d_%d_%d", v[0], v[1], v[2])
}

// Dotted returns the display form of the version, e.g. "1.0.1".
func (v Version) Dotted() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// Compare returns -1, 0 or 1 as v sorts before, equal to or after o.
func (v Version) Compare(o Version) int {
	for i := range v {
		switch {
		case v[i] < o[i]:
			return -1
		case v[i] > o[i]:
			return 1
		}
	}
	return 0
}

// AtMost reports whether v is no later than o. Version fallback selects the
// highest declared version that is AtMost the requested one.
func (v Version) AtMost(o Version) bool {
	return v.Compare(o) <= 0
}
