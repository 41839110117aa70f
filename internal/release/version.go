// Package release bumps the roster version and publishes it through git.
package release

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Zero is the version assumed when history carries no release commit.
var Zero = semver.New(0, 0, 0, "", "")

// CurrentVersion extracts the version from a release commit subject such
// as "v1.2.3". Only the first word counts; anything else yields Zero.
func CurrentVersion(subject string) *semver.Version {
	fields := strings.Fields(subject)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "v") {
		return Zero
	}
	v, err := semver.StrictNewVersion(strings.TrimPrefix(fields[0], "v"))
	if err != nil {
		return Zero
	}
	return v
}

// NextVersion increments v with single-digit roll-over: patch 9 moves to
// the next minor, and minor 9 with patch 9 moves to the next major.
func NextVersion(v *semver.Version) *semver.Version {
	var next semver.Version
	switch {
	case v.Patch() == 9 && v.Minor() == 9:
		next = v.IncMajor()
	case v.Patch() == 9:
		next = v.IncMinor()
	default:
		next = v.IncPatch()
	}
	return &next
}

// Tag formats v the way release commits name it.
func Tag(v *semver.Version) string {
	return "v" + v.String()
}
