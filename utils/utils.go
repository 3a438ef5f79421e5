package utils

import (
	"sort"
)

// SortKeys returns the keys of m in ascending order.
func SortKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
