// Package testutil provides small helpers shared by the kernel's test
// suites — currently just a structural JSON diff used to compare evaluated
// terms against hand-built expected forms.
package testutil

import (
	"github.com/google/go-cmp/cmp"
)

// DiffJSON returns a string showing the differences between two JSON-shaped
// values, empty if they are equal.
func DiffJSON(expected, actual interface{}) string {
	return cmp.Diff(expected, actual)
}
