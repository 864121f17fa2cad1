package utils

// Pointer returns a pointer to a copy of v, for optional answers and fields.
func Pointer[T any](v T) *T {
	return &v
}
