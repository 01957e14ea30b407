// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses multi-valued URL query parameters.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated query string into a trimmed,
// lowercased slice of strings. Empty entries are dropped.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.ToLower(strings.TrimSpace(v))
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Values merges repeated and comma-separated forms (?plan=pro&plan=free or ?plan=pro,free).
func Values(vals []string) []string {
	var res []string
	for _, v := range vals {
		res = append(res, StringSlice(v)...)
	}
	return res
}
