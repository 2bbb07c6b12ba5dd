// Package utility holds small convenience helpers shared by the demo
// programs and tests.
package utility

import "slices"

// Repeat calls f n times.
func Repeat(n int, f func()) {
	for i := 0; i < n; i++ {
		f()
	}
}

// RepeatIdx calls f n times, passing the iteration index.
func RepeatIdx(n int, f func(int)) {
	for i := 0; i < n; i++ {
		f(i)
	}
}

// EraseWhere removes every element satisfying pred and returns the
// shortened slice.
func EraseWhere[S ~[]E, E any](s S, pred func(E) bool) S {
	return slices.DeleteFunc(s, pred)
}
