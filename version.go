package dna

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// DNA spec versions this SDK understands. The tag format is MAJOR.MINOR; the
// descriptor schema predates semver and never carried a patch component.
const (
	// CurrentSpecVersion is the schema version New() stamps on fresh
	// descriptors and the version an untagged document reads back at.
	CurrentSpecVersion = "2.0"
	// OldestSupportedSpecVersion is the oldest tag this SDK still parses
	// without complaint.
	OldestSupportedSpecVersion = "1.0"
)

// SupportedSpecRange returns the oldest and current spec versions supported by this SDK.
func SupportedSpecRange() (oldest, current string) {
	return OldestSupportedSpecVersion, CurrentSpecVersion
}

var (
	oldestSupportedTag specTag
	currentTag         specTag
)

func init() {
	var err error
	oldestSupportedTag, err = parseSpecTag(OldestSupportedSpecVersion)
	if err != nil {
		panic(fmt.Sprintf("dna: invalid OldestSupportedSpecVersion %q: %v", OldestSupportedSpecVersion, err))
	}
	currentTag, err = parseSpecTag(CurrentSpecVersion)
	if err != nil {
		panic(fmt.Sprintf("dna: invalid CurrentSpecVersion %q: %v", CurrentSpecVersion, err))
	}
}

// IsSupportedSpecVersion reports whether the provided spec version tag is
// within this SDK's supported range. It returns an error when v is not a
// well-formed MAJOR.MINOR tag.
func IsSupportedSpecVersion(v string) (bool, error) {
	parsed, err := parseSpecTag(v)
	if err != nil {
		return false, err
	}
	return compareSpecTag(parsed, oldestSupportedTag) >= 0 && compareSpecTag(parsed, currentTag) <= 0, nil
}

// IsCurrentSpecVersion reports whether v is exactly the current schema version.
func IsCurrentSpecVersion(v string) bool {
	return strings.TrimSpace(v) == CurrentSpecVersion
}

type specTag struct {
	major int
	minor int
}

func parseSpecTag(v string) (specTag, error) {
	parts := strings.Split(strings.TrimSpace(v), ".")
	if len(parts) != 2 {
		return specTag{}, fmt.Errorf("invalid spec version tag: %q", v)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return specTag{}, fmt.Errorf("invalid spec version tag: %q", v)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 {
		return specTag{}, fmt.Errorf("invalid spec version tag: %q", v)
	}
	return specTag{major: major, minor: minor}, nil
}

func compareSpecTag(a, b specTag) int {
	if a.major != b.major {
		return cmp.Compare(a.major, b.major)
	}
	return cmp.Compare(a.minor, b.minor)
}
