// Утилитарные функции общего назначения
package utils

func Ptr[T any](v T) *T {
	return &v
}

// Deref возвращает значение указателя или fallback, если указатель nil.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
