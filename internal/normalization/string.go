package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

// ParseLevelString uppercases level inputs so "elementary" and
// "ELEMENTARY" resolve to the same catalog tier.
func ParseLevelString(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
