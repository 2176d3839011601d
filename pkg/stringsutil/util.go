package stringsutil

func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}

// Dedupe removes duplicates while preserving first-seen order.
func Dedupe(slice []string) []string {
	seen := make(map[string]bool, len(slice))
	var result []string

	for _, s := range slice {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	return result
}

// MoveToFront returns slice with the first occurrence of s moved to index 0.
// Unchanged when s is absent or empty.
func MoveToFront(slice []string, s string) []string {
	if s == "" {
		return slice
	}
	for i, v := range slice {
		if v == s {
			result := make([]string, 0, len(slice))
			result = append(result, s)
			result = append(result, slice[:i]...)
			result = append(result, slice[i+1:]...)
			return result
		}
	}
	return slice
}
