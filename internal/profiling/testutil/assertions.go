package testutil

import (
	"testing"

	"github.com/leengari/relprofile/internal/profiling/structures"
)

// UCCIndices flattens UCC results to their index lists
func UCCIndices(uccs []structures.UCC) [][]int {
	out := make([][]int, len(uccs))
	for i, u := range uccs {
		out[i] = u.Attributes.Indices()
	}
	return out
}

// AssertMinimal checks that no returned UCC is a strict superset of another
func AssertMinimal(t *testing.T, uccs []structures.UCC, context string) {
	t.Helper()
	for i, a := range uccs {
		for j, b := range uccs {
			if i == j {
				continue
			}
			if a.Attributes.Len() > b.Attributes.Len() && a.Attributes.Contains(b.Attributes) {
				t.Errorf("%s: %s is a superset of %s", context, a.Attributes, b.Attributes)
			}
			if a.Attributes.Equal(b.Attributes) {
				t.Errorf("%s: %s reported twice", context, a.Attributes)
			}
		}
	}
}

// INDStrings renders INDs for compact comparisons
func INDStrings(inds []structures.IND) []string {
	out := make([]string, len(inds))
	for i, ind := range inds {
		out[i] = ind.String()
	}
	return out
}
