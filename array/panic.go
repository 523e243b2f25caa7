package array

import "fmt"

func indexOutOfRange(i, n int) string {
	return fmt.Sprintf("array: index %d out of range with length %d", i, n)
}

func windowOutOfRange(off, n, length int) string {
	return fmt.Sprintf("array: window [%d, %d) out of range with length %d", off, off+n, length)
}

func lengthMismatch(want, got int) string {
	return fmt.Sprintf("array: mask length %d does not match array length %d", got, want)
}
