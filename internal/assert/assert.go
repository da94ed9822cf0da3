// Package assert panics on violated internal invariants — bugs, not user
// input errors, per spec.md §7.
package assert

import "fmt"

// That panics with a formatted message if cond is false.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("sixelenc: invariant violated: "+format, args...))
	}
}
