package gmtstamp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// EngineVersion is a GMT release number. It is only used to gate features
// that differ between GMT releases.
type EngineVersion struct {
	Major int
	Minor int
	Patch int
}

var (
	// A single -U offset is ignored up to and including this release.
	// See https://github.com/GenericMappingTools/gmt/issues/7107.
	lastVersionWithSingleOffsetBug = EngineVersion{6, 4, 0}

	// The +t modifier of -U first shipped in this release.
	// See https://github.com/GenericMappingTools/gmt/pull/7127.
	firstVersionWithTimestampText = EngineVersion{6, 5, 0}
)

// `gmt --version` prints things like "6.5.0" for releases and
// "6.6.0_8a7c1e9_2024.11.20" for dev builds. Only the leading numbers matter.
var versionPrefix = regexp.MustCompile(`^v?(\d+)\.(\d+)(?:\.(\d+))?`)

func ParseEngineVersion(raw string) (EngineVersion, error) {
	match := versionPrefix.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return EngineVersion{}, newError(KindInvalidValue, fmt.Sprintf("cannot parse engine version %q", raw), nil)
	}

	v := EngineVersion{}
	v.Major, _ = strconv.Atoi(match[1])
	v.Minor, _ = strconv.Atoi(match[2])
	if match[3] != "" {
		v.Patch, _ = strconv.Atoi(match[3])
	}

	if !semver.IsValid(v.semver()) {
		return EngineVersion{}, newError(KindInvalidValue, fmt.Sprintf("invalid engine version %q", raw), nil)
	}

	return v, nil
}

// MustParseEngineVersion is like ParseEngineVersion but panics on error.
func MustParseEngineVersion(raw string) EngineVersion {
	v, err := ParseEngineVersion(raw)
	if err != nil {
		panic(err)
	}

	return v
}

func (v EngineVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v EngineVersion) semver() string {
	return "v" + v.String()
}

// Compare returns -1, 0 or +1 depending on whether v is older than, equal to,
// or newer than other.
func (v EngineVersion) Compare(other EngineVersion) int {
	return semver.Compare(v.semver(), other.semver())
}

func (v EngineVersion) AtLeast(other EngineVersion) bool {
	return v.Compare(other) >= 0
}

func (v EngineVersion) AtMost(other EngineVersion) bool {
	return v.Compare(other) <= 0
}

func (v EngineVersion) IsZero() bool {
	return v == EngineVersion{}
}
