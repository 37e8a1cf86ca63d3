// Package basics holds the small pure functions the first recipes are built on.
package basics

import (
	"errors"
	"math"
	"strconv"
)

// ErrOverflow is returned when a result does not fit in uint64.
var ErrOverflow = errors.New("result overflows uint64")

// Number is any built-in integer or float type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func Add[T Number](a, b T) T {
	return a + b
}

// Factorial returns n!. 20! is the largest value uint64 can hold.
func Factorial(n uint) (uint64, error) {
	if n > 20 {
		return 0, ErrOverflow
	}
	out := uint64(1)
	for i := uint64(2); i <= uint64(n); i++ {
		out *= i
	}
	return out, nil
}

// FizzBuzz returns the classic sequence for 1..n.
func FizzBuzz(n int) []string {
	out := make([]string, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		switch {
		case i%15 == 0:
			out = append(out, "FizzBuzz")
		case i%3 == 0:
			out = append(out, "Fizz")
		case i%5 == 0:
			out = append(out, "Buzz")
		default:
			out = append(out, strconv.Itoa(i))
		}
	}
	return out
}

// IsPrime reports whether n is prime using trial division up to sqrt(n).
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}
	limit := int(math.Sqrt(float64(n)))
	for i := 2; i <= limit; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Reverse reverses s by runes, so multi-byte characters survive.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func Sum[T Number](xs []T) T {
	var total T
	for _, x := range xs {
		total += x
	}
	return total
}
