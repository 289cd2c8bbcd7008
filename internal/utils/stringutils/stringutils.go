package stringutils

import "strings"

// InClause builds the placeholder list and argument slice for an IN (...) filter.
func InClause[T any](list []T) (placeholders string, args []any) {
	marks := make([]string, len(list))
	args = make([]any, len(list))
	for i, item := range list {
		marks[i] = "?"
		args[i] = item
	}

	return strings.Join(marks, ", "), args
}
