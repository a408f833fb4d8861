package utils

import "strconv"

// ParseIndex parses a chunk index suffix. Only plain decimal digits are
// accepted, so "+1", "-1", " 1" and "" are rejected.
func ParseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return val, true
}
