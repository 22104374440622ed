package util

// RangeInt returns the indices 0..to-1.
func RangeInt(to int) []int {
	retval := make([]int, to)
	for i := 0; i < to; i++ {
		retval[i] = i
	}
	return retval
}

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}
