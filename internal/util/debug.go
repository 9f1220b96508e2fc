package util

import (
	"github.com/kr/pretty"
)

// DebugPrint returns a string representation of the given value.
// This is useful for debugging purposes, and will pretty print
// the structure of a blueprint or imported declaration in human readable form.
//
// Do Not Use: This function is only for debugging purposes.
func DebugPrint(v any) string {
	return pretty.Sprintf("%# v", v)
}
