package collectionutils

// GroupBy groups a slice of items into a map based on a key selector function.
// The key selector function extracts a key from each item, and the resulting map contains slices of items for each unique key.
func GroupBy[T any, K comparable](items []T, keySelector func(T) K) map[K][]T {
	m := make(map[K][]T)
	for _, item := range items {
		k := keySelector(item)
		m[k] = append(m[k], item)
	}

	return m
}

// GetOrDefault returns the value associated with the given key from the map `m`.
// If the key does not exist in the map, it returns the provided `defaultValue`.
func GetOrDefault[K comparable, T any](m map[K]T, key K, defaultValue T) T {
	v, ok := m[key]
	if !ok {
		return defaultValue
	} else {
		return v
	}
}

// DistinctBy keeps the first item for every key, preserving order.
func DistinctBy[T any, K comparable](items []T, keySelector func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	result := make([]T, 0, len(items))
	for _, item := range items {
		k := keySelector(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, item)
	}

	return result
}
