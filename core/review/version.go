package review

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type VersionComparison int

const (
	SameVersion VersionComparison = iota
	UpdateRecommended
	Incompatible
)

// CompareVersions matches the client's major.minor.patch against the
// server-reported one. A major or minor mismatch is incompatible; a
// patch mismatch only recommends an update.
func CompareVersions(current, remote string) (VersionComparison, error) {
	cur, err := parseVersion(current)
	if err != nil {
		return Incompatible, err
	}
	rem, err := parseVersion(remote)
	if err != nil {
		return Incompatible, err
	}
	if cur[0] != rem[0] || cur[1] != rem[1] {
		return Incompatible, nil
	}
	if cur[2] != rem[2] {
		return UpdateRecommended, nil
	}
	return SameVersion, nil
}

func parseVersion(version string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return out, errors.Errorf("malformed version %q", version)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return out, errors.Wrapf(err, "malformed version %q", version)
		}
		out[i] = n
	}
	return out, nil
}
