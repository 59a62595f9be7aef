// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import "strings"

// StringSlice splits a comma-separated value such as "content,media".
// Blank items are dropped and the rest are trimmed. An empty value yields nil.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}

	var out []string
	for _, item := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(item); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
