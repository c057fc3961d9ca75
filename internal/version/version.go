// Package version stamps generated systems with the generator version.
// The major number changes whenever the same (class, seed) would produce
// a different system, so archived payloads and cache entries written
// under another major cannot be trusted to replay.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Software names the producer in API and export payloads.
const Software = "stellar-forge"

// Current is the version of the generation algorithms in this build.
var Current = Version{Major: 1, Minor: 0, Patch: 0}

// Version is a major.minor.patch triple.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Parse reads the string form stored alongside archived systems. A
// leading "v" is tolerated.
func Parse(s string) (Version, error) {
	fields := strings.Split(strings.TrimPrefix(s, "v"), ".")
	if len(fields) != 3 {
		return Version{}, fmt.Errorf("version %q is not major.minor.patch", s)
	}
	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("version %q: bad component %q", s, f)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Replays reports whether a system stamped with v regenerates identically
// under generator version cur. Minor and patch releases only add fields.
func (v Version) Replays(cur Version) bool {
	return v.Major == cur.Major
}

// Info is the version block served by the API.
type Info struct {
	Generator string `json:"generator"`
	Software  string `json:"software"`
}

func GetInfo() Info {
	return Info{Generator: Current.String(), Software: Software}
}
