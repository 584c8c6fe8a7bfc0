package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Reversed writes src into dst in reverse order and returns dst.
// dst is grown with EnsureLen when too short.
func Reversed(dst, src []float64) []float64 {
	dst = EnsureLen(dst, len(src))
	last := len(src) - 1
	for i, v := range src {
		dst[last-i] = v
	}
	return dst
}
