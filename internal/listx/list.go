// Package listx holds small generic slice helpers.
package listx

// DropLastUntil returns the elements that precede the last element matching
// pred. The match and everything after it are dropped; if nothing matches
// the result is empty. The returned slice shares list's backing array.
func DropLastUntil[T any](list []T, pred func(T) bool) []T {
	for i := len(list) - 1; i >= 0; i-- {
		if pred(list[i]) {
			return list[:i]
		}
	}
	return list[:0]
}
