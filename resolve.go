package pivotchart

import "strings"

// ParseDimensionKey converts a UI selection into a DimensionKey. Empty
// input and the "None" placeholder map to NoDimension.
func ParseDimensionKey(s string) DimensionKey {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return NoDimension
	}

	return DimensionKey(s)
}

// ResolveEncodings drops color and pattern selections that are not among
// dimensions. Stale selections are expected while the UI catches up with
// a changed comparison list, so this never fails.
func ResolveEncodings(color, pattern DimensionKey, dimensions []DimensionKey) (DimensionKey, DimensionKey) {
	if !containsKey(dimensions, color) {
		color = NoDimension
	}
	if !containsKey(dimensions, pattern) {
		pattern = NoDimension
	}

	return color, pattern
}

func containsKey(keys []DimensionKey, key DimensionKey) bool {
	if key == NoDimension {
		return false
	}
	for _, k := range keys {
		if k == key {
			return true
		}
	}

	return false
}
