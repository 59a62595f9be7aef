// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert reads loosely typed query values.

Malformed input never fails: it collapses to the default. Use [strconv]
directly where a bad value must be reported to the caller.
*/
package convert

import "strconv"

// ToIntD parses s as an int, or returns def when s is empty or malformed.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ToBool accepts the [strconv.ParseBool] spellings ("1", "true", "T", ...).
// Anything else is false.
func ToBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}
