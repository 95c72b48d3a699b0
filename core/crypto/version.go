package crypto

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Blake2sVersion is the first Starknet version committing with Blake2s.
var Blake2sVersion = semver.MustParse("0.14.1")

// ParseStarknetVersion reduces a Starknet version to major.minor.patch. Pre-release and build
// suffixes are dropped, missing components are zero padded and a fourth component is ignored.
func ParseStarknetVersion(version string) (*semver.Version, error) {
	if version == "" {
		return semver.NewVersion("0.0.0")
	}

	base, _, _ := strings.Cut(version, "+")
	base, _, _ = strings.Cut(base, "-")

	sep := "."
	digits := strings.Split(base, sep)
	// pad with 3 zeros in case version has less than 3 digits
	digits = append(digits, []string{"0", "0", "0"}...)

	// get first 3 digits only
	v, err := semver.StrictNewVersion(strings.Join(digits[:3], sep))
	if err != nil {
		return nil, fmt.Errorf("starknet version %q: %w", version, err)
	}
	return v, nil
}

// HashMethodForVersion selects the commitment hash of a Starknet version. Only
// (major, minor, patch) take part in the comparison, so 0.14.1-rc.0 already selects Blake2s.
func HashMethodForVersion(version string) (HashMethod, error) {
	v, err := ParseStarknetVersion(version)
	if err != nil {
		return 0, err
	}
	if v.LessThan(Blake2sVersion) {
		return Poseidon, nil
	}
	return Blake2s, nil
}
