package lang

import "math"

// Overflow-checked signed 64-bit arithmetic. Every arithmetic operator the
// execution engines expose goes through one of these so that a fault is
// raised instead of silently wrapping.

// CheckedAdd returns (a+b, ok). ok is false on signed overflow.
func CheckedAdd(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// CheckedSub returns (a-b, ok). ok is false on signed overflow.
func CheckedSub(a, b int64) (int64, bool) {
	if (b > 0 && a < math.MinInt64+b) || (b < 0 && a > math.MaxInt64+b) {
		return 0, false
	}
	return a - b, true
}

// CheckedMul returns (a*b, ok). ok is false on signed overflow.
func CheckedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}
	res := a * b
	if res/b != a {
		return 0, false
	}
	return res, true
}

// CheckedNeg returns (-a, ok). ok is false for MinInt64.
func CheckedNeg(a int64) (int64, bool) {
	if a == math.MinInt64 {
		return 0, false
	}
	return -a, true
}

// CheckedDiv returns (a/b, ok). The caller must rule out b == 0 first; ok is
// false only for MinInt64 / -1.
func CheckedDiv(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	return a / b, true
}

// CheckedRem returns (a%b, ok). The caller must rule out b == 0 first; ok is
// false only for MinInt64 % -1.
func CheckedRem(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	return a % b, true
}
