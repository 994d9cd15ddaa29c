// Package subarray computes the maximum sum over contiguous, non-empty runs
// of a numeric sequence.
//
// The computation is Kadane's algorithm: one pass, constant extra space, no
// mutation of the input. An empty sequence is an error, never 0, because 0
// is only a valid answer when some run actually sums to zero.
package subarray

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrInvalidInput is returned for an empty sequence.
var ErrInvalidInput = errors.New("subarray: invalid input: sequence is empty")

// Number is any built-in integer or floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Span is the winning run of a sequence: arr[Start:End] sums to Sum.
type Span[T Number] struct {
	Sum   T
	Start int
	End   int // exclusive
}

// Len returns the number of elements in the run.
func (s Span[T]) Len() int { return s.End - s.Start }

// Of returns the run as a sub-slice of arr. It shares arr's backing array.
func (s Span[T]) Of(arr []T) []T { return arr[s.Start:s.End] }

// MaxSum returns the largest sum of any contiguous, non-empty run of arr.
// For an all-negative arr that is its largest element.
func MaxSum[T Number](arr []T) (T, error) {
	span, err := Find(arr)
	if err != nil {
		var zero T
		return zero, err
	}
	return span.Sum, nil
}

// Find is MaxSum that also reports where the winning run lies.
//
// Ties go to the run that ends first; among runs ending at the same index,
// the longer one wins, since a run is only restarted when the sum carried
// into it is strictly negative.
func Find[T Number](arr []T) (Span[T], error) {
	if len(arr) == 0 {
		return Span[T]{}, ErrInvalidInput
	}

	current, curStart := arr[0], 0
	best := Span[T]{Sum: arr[0], Start: 0, End: 1}

	for i := 1; i < len(arr); i++ {
		x := arr[i]
		// current = max(x, current+x), never reset to zero.
		if current < 0 {
			current, curStart = x, i
		} else {
			current += x
		}
		if current > best.Sum {
			best = Span[T]{Sum: current, Start: curStart, End: i + 1}
		}
	}
	return best, nil
}

// BruteForce checks every run. It is quadratic and exists as a reference
// for MaxSum.
func BruteForce[T Number](arr []T) (T, error) {
	if len(arr) == 0 {
		var zero T
		return zero, ErrInvalidInput
	}
	best := arr[0]
	for i := range arr {
		var sum T
		for j := i; j < len(arr); j++ {
			sum += arr[j]
			if sum > best {
				best = sum
			}
		}
	}
	return best, nil
}
