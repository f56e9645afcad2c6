package utils

import "strconv"

// ParseID parses a decimal record ID from query or form input.
func ParseID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}
