package common

import (
	"strconv"
	"strings"
)

// ParseUint64orHex parses a block height given in decimal or as 0x-prefixed hex.
// A nil value parses as 0.
func ParseUint64orHex(val *string) (uint64, error) {
	if val == nil {
		return 0, nil
	}

	str := strings.TrimSpace(*val)
	if digits, ok := cutHexPrefix(str); ok {
		return strconv.ParseUint(digits, 16, 64)
	}

	return strconv.ParseUint(str, 10, 64)
}

func cutHexPrefix(s string) (string, bool) {
	if digits, ok := strings.CutPrefix(s, "0x"); ok {
		return digits, true
	}
	return strings.CutPrefix(s, "0X")
}

// ToLowerWithTrim normalizes config keys and levels for comparison.
func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
