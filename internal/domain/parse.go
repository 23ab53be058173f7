package domain

import (
	"regexp"
	"strconv"
)

// leadingIntRe matches an optionally signed run of decimal digits at the start
// of a value, after any whitespace, e.g. " 12.9" -> "12", "-3ppm" -> "-3".
var leadingIntRe = regexp.MustCompile(`^\s*([+-]?\d+)`)

// parseLeadingInt parses the integer prefix of s. ok is false when s does not
// start with digits or the prefix overflows an int.
func parseLeadingInt(s string) (int, bool) {
	matches := leadingIntRe.FindStringSubmatch(s)
	if len(matches) != 2 {
		return 0, false
	}
	v, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseIntOrZero parses the integer prefix of s, returning 0 on failure.
func parseIntOrZero(s string) int {
	v, ok := parseLeadingInt(s)
	if !ok {
		return 0
	}
	return v
}
