// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses the loosely formatted numbers that metadata providers
return ("2010", "7.8", " 136 ").

Parsing failures are not errors here: callers treat an unparsable value the
same as a missing one.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToInt parses s as a base-10 integer, returning 0 when it is empty or malformed.
func ToInt(s string) int {
	return ToIntD(s, 0)
}

// ToIntD parses s as a base-10 integer, returning def when it is empty or malformed.
func ToIntD(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ToFloat64 parses s as a decimal number, returning 0 when it is empty or malformed.
func ToFloat64(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
