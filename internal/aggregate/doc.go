// Package aggregate derives read-only views over a loaded complaint set.
//
// Every function is pure: it never mutates its input, never touches the
// store and returns an empty (or zero-filled) result for empty input.
package aggregate
