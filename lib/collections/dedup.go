package collections

// Deduplicate returns a copy of s without duplicates, keeping the first
// occurrence of every element and the slice type of the input.
// A nil input yields nil.
func Deduplicate[S ~[]E, E comparable](s S) S {
	if s == nil {
		return nil
	}
	seen := make(map[E]struct{}, len(s))
	res := make(S, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
