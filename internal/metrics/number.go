package metrics

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseTolerantFloat converts a sample token to a float64.
//
// Leading and trailing whitespace and whitespace after a sign are allowed.
// "inf", "+Inf", "-inf" and "nan" are recognized in any case. Values too
// large for float64 become ±Inf. Anything else that does not parse yields 0.
func ParseTolerantFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	sign := ""
	if s[0] == '+' || s[0] == '-' {
		sign = s[:1]
		s = strings.TrimLeft(s[1:], " \t")
	}

	v, err := strconv.ParseFloat(sign+s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v
		}
		return 0
	}
	return v
}

// ParseTolerantUint converts a token to an unsigned integer by truncating the
// float value. Negative, NaN and infinite values yield 0; values beyond the
// uint64 range saturate.
func ParseTolerantUint(s string) uint64 {
	v := ParseTolerantFloat(s)
	switch {
	case math.IsNaN(v), math.IsInf(v, 0), v < 0:
		return 0
	case v >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(v)
}

// parseTolerantInt converts a label such as cpu="3" to an int. Malformed
// input yields 0, matching ParseTolerantFloat.
func parseTolerantInt(s string) int {
	v := ParseTolerantFloat(s)
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}
