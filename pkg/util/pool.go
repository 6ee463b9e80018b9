package util

import "runtime"

// GetOptimalPoolSize sizes the tree-sitter parser pools used to verify
// generated files: twice the CPU count, clamped to [4, 32]. Parsing is CGO
// bound, so extra parsers keep goroutines busy while others wait in C.
func GetOptimalPoolSize() int {
	return min(max(runtime.NumCPU()*2, 4), 32)
}

// GetOptimalPoolSizeWithOverride returns override when it is positive and
// GetOptimalPoolSize otherwise.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
