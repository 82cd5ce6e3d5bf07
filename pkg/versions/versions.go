// Package versions compares dotted platform versions such as "7.3.314.3409".
//
// Versions are split on "." and compared component by component, left to
// right. Two components that are both numeric compare as integers; anything
// else compares as strings, so a trailing build tag like "7.1.2.a" never breaks
// a comparison. A version that is a strict prefix of another sorts first.
//
// Every comparison takes a Shrink mode that truncates the operands before
// comparing. The default, ShrinkToOther, truncates v1 to the length of v2 so a
// full build version can be gated against a short feature version:
//
//	versions.Min("7.3.314.3409", "7.3", versions.ShrinkToOther) // true
//	versions.Eq("7.1.2.3", "7.1.2", versions.ShrinkNone)        // false
package versions

import (
	"fmt"
	"strconv"
	"strings"
)

// Shrink controls how operands are truncated before comparison.
type Shrink int

const (
	// ShrinkToOther truncates v1 to the number of components in v2.
	ShrinkToOther Shrink = -1

	// ShrinkNone compares the full versions.
	ShrinkNone Shrink = 0
)

// ShrinkTo truncates both operands to n components.
func ShrinkTo(n int) Shrink {
	if n < 1 {
		return ShrinkNone
	}
	return Shrink(n)
}

// Requirement is a set of version bounds. Empty bounds are ignored.
type Requirement struct {
	Min string `hcl:"min,optional" yaml:"min,omitempty"`
	Max string `hcl:"max,optional" yaml:"max,omitempty"`
	Eq  string `hcl:"eq,optional" yaml:"eq,omitempty"`
}

// IsZero reports whether no bound is set.
func (r Requirement) IsZero() bool {
	return r.Min == "" && r.Max == "" && r.Eq == ""
}

// String returns a compact representation of the requirement.
func (r Requirement) String() string {
	var parts []string
	if r.Min != "" {
		parts = append(parts, ">="+r.Min)
	}
	if r.Max != "" {
		parts = append(parts, "<="+r.Max)
	}
	if r.Eq != "" {
		parts = append(parts, "=="+r.Eq)
	}
	if len(parts) == 0 {
		return "any"
	}
	return strings.Join(parts, ", ")
}

// Split breaks a version into its components.
func Split(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return strings.Split(v, ".")
}

// Min reports whether v1 is greater than or equal to v2.
func Min(v1, v2 string, shrink Shrink) bool {
	return Compare(v1, v2, shrink) >= 0
}

// Max reports whether v1 is less than or equal to v2.
func Max(v1, v2 string, shrink Shrink) bool {
	return Compare(v1, v2, shrink) <= 0
}

// Eq reports whether v1 equals v2.
func Eq(v1, v2 string, shrink Shrink) bool {
	return Compare(v1, v2, shrink) == 0
}

// Check reports whether version satisfies every bound set in req.
func Check(version string, req Requirement, shrink Shrink) bool {
	if req.Min != "" && !Min(version, req.Min, shrink) {
		return false
	}
	if req.Max != "" && !Max(version, req.Max, shrink) {
		return false
	}
	if req.Eq != "" && !Eq(version, req.Eq, shrink) {
		return false
	}
	return true
}

// Compare returns -1, 0 or 1 depending on whether v1 sorts before, equal to,
// or after v2 once both are truncated according to shrink.
func Compare(v1, v2 string, shrink Shrink) int {
	p1, p2 := Split(v1), Split(v2)

	switch {
	case shrink == ShrinkToOther:
		p1 = truncate(p1, len(p2))
	case shrink > 0:
		p1 = truncate(p1, int(shrink))
		p2 = truncate(p2, int(shrink))
	}

	for i := 0; i < len(p1) && i < len(p2); i++ {
		if c := compareComponent(p1[i], p2[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(p1) < len(p2):
		return -1
	case len(p1) > len(p2):
		return 1
	default:
		return 0
	}
}

func truncate(parts []string, n int) []string {
	if len(parts) > n {
		return parts[:n]
	}
	return parts
}

func compareComponent(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// MismatchError is returned by CheckRequirement when a version does not
// satisfy a requirement.
type MismatchError struct {
	Version     string
	Requirement Requirement
	Source      string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("version %q from %s does not satisfy %s",
		e.Version, e.Source, e.Requirement)
}

// CheckRequirement returns a *MismatchError when version fails req.
// src describes where version came from and is only used in the error.
func CheckRequirement(version string, req Requirement, src string) error {
	if req.IsZero() {
		return nil
	}
	if !Check(version, req, ShrinkToOther) {
		return &MismatchError{Version: version, Requirement: req, Source: src}
	}
	return nil
}
