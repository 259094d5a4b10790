// Package hierarchy materializes the nested plan tree from the flat
// plan_nodes arena and defines the ordering of dotted position codes.
package hierarchy

import (
	"strconv"
	"strings"
)

// CompareCodes compares two dotted hierarchical codes ("1.2.10") by
// numeric segment value, not lexically, so "1.10" sorts after "1.2".
// When all shared segments are equal the shorter code sorts first.
// Empty or malformed codes sort last; two malformed codes fall back to
// a plain string comparison to stay deterministic. Never panics.
func CompareCodes(a, b string) int {
	segsA, okA := parseCode(a)
	segsB, okB := parseCode(b)

	if okA != okB {
		if okA {
			return -1
		}
		return 1
	}
	if !okA {
		return strings.Compare(a, b)
	}

	n := len(segsA)
	if len(segsB) < n {
		n = len(segsB)
	}
	for i := 0; i < n; i++ {
		if segsA[i] != segsB[i] {
			if segsA[i] < segsB[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(segsA) < len(segsB):
		return -1
	case len(segsA) > len(segsB):
		return 1
	default:
		return 0
	}
}

// parseCode splits a dotted code into integer segments. The second
// return is false for empty codes or codes with non-numeric segments.
func parseCode(code string) ([]int, bool) {
	if code == "" {
		return nil, false
	}
	parts := strings.Split(code, ".")
	segs := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		segs = append(segs, v)
	}
	return segs, true
}
