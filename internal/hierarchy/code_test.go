package hierarchy

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareCodes_NumericSegments(t *testing.T) {
	assert.Equal(t, -1, CompareCodes("1.2", "1.10"), "segments compare as integers, not strings")
	assert.Equal(t, 1, CompareCodes("1.10", "1.2"))
	assert.Equal(t, 0, CompareCodes("1.2.10", "1.2.10"))
}

func TestCompareCodes_ShorterFirstOnEqualPrefix(t *testing.T) {
	assert.Equal(t, -1, CompareCodes("1", "1.1"))
	assert.Equal(t, 1, CompareCodes("2.3.1", "2.3"))
}

func TestCompareCodes_MalformedSortsLast(t *testing.T) {
	assert.Equal(t, -1, CompareCodes("3", ""))
	assert.Equal(t, 1, CompareCodes("", "3"))
	assert.Equal(t, -1, CompareCodes("1.2", "1.x"))
	assert.Equal(t, 1, CompareCodes("a", "99.99"))
}

func TestCompareCodes_MalformedPairIsDeterministic(t *testing.T) {
	assert.Equal(t, -CompareCodes("b", "a"), CompareCodes("a", "b"))
	assert.Equal(t, 0, CompareCodes("", ""))
}

func TestCompareCodes_SiblingOrdering(t *testing.T) {
	codes := []string{"1.10", "1.2", "1.1"}
	sort.Slice(codes, func(i, j int) bool {
		return CompareCodes(codes[i], codes[j]) < 0
	})
	assert.Equal(t, []string{"1.1", "1.2", "1.10"}, codes)
}
