// Package numparse turns untyped input (command-line text, JSON tool
// arguments) into a typed sequence that internal/subarray can solve.
package numparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/HendryAvila/maxsub/internal/subarray"
)

// Kind selects the element type of a Sequence.
type Kind string

const (
	// KindAuto picks int64 when every value is integral and no run sum
	// can overflow, float64 otherwise.
	KindAuto  Kind = "auto"
	KindInt   Kind = "int"
	KindFloat Kind = "float"
)

var (
	// ErrBadNumber is returned for a token that is not a number.
	ErrBadNumber = errors.New("not a number")
	// ErrNotIntegral is returned when KindInt is forced on a value with a
	// fractional part or outside the int64 range.
	ErrNotIntegral = errors.New("not an integer")
	// ErrUnknownKind is returned for a Kind other than auto, int or float.
	ErrUnknownKind = errors.New("unknown kind")
)

// ParseKind validates a user-supplied kind. The empty string means auto.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", KindAuto:
		return KindAuto, nil
	case KindInt, KindFloat:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q (want auto, int or float)", ErrUnknownKind, s)
	}
}

// Sequence is a parsed input. Exactly one of Ints or Floats is in use,
// according to Kind.
type Sequence struct {
	kind   Kind
	auto   bool
	Ints   []int64
	Floats []float64
}

// Kind reports KindInt or KindFloat.
func (s Sequence) Kind() Kind { return s.kind }

// Auto reports whether the kind was picked by KindAuto rather than forced
// by the caller.
func (s Sequence) Auto() bool { return s.auto }

// Len returns the number of elements.
func (s Sequence) Len() int {
	if s.kind == KindFloat {
		return len(s.Floats)
	}
	return len(s.Ints)
}

// Strings renders every element in decimal, in order.
func (s Sequence) Strings() []string {
	out := make([]string, 0, s.Len())
	if s.kind == KindFloat {
		for _, v := range s.Floats {
			out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
		}
		return out
	}
	for _, v := range s.Ints {
		out = append(out, strconv.FormatInt(v, 10))
	}
	return out
}

// Result is a solved Sequence. Sum is rendered in the sequence's own kind
// so int64 sums never pass through float64.
type Result struct {
	Kind  Kind   `json:"kind"`
	Auto  bool   `json:"auto"`
	Sum   string `json:"sum"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Solve runs subarray.Find over the sequence. An empty sequence returns
// subarray.ErrInvalidInput.
func (s Sequence) Solve() (Result, error) {
	if s.kind == KindFloat {
		span, err := subarray.Find(s.Floats)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Kind:  KindFloat,
			Auto:  s.auto,
			Sum:   strconv.FormatFloat(span.Sum, 'g', -1, 64),
			Start: span.Start,
			End:   span.End,
		}, nil
	}

	span, err := subarray.Find(s.Ints)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Kind:  KindInt,
		Auto:  s.auto,
		Sum:   strconv.FormatInt(span.Sum, 10),
		Start: span.Start,
		End:   span.End,
	}, nil
}

// ParseText parses numbers separated by commas, whitespace or newlines.
// One pair of enclosing brackets is allowed, so "[1, -2, 3]" and
// "1 -2 3" parse the same. Blank text yields an empty sequence.
func ParseText(text string, kind Kind) (Sequence, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") && len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	if i := strings.IndexAny(text, "[]"); i >= 0 {
		return Sequence{}, fmt.Errorf("unbalanced bracket at offset %d: %w", i, ErrBadNumber)
	}

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	vals := make([]any, len(tokens))
	for i, tok := range tokens {
		vals[i] = tok
	}
	return FromAny(vals, kind)
}

// FromAny converts JSON-decoded values (float64, json.Number, integer
// types or numeric strings) into a Sequence.
func FromAny(vals []any, kind Kind) (Sequence, error) {
	kind, err := ParseKind(string(kind))
	if err != nil {
		return Sequence{}, err
	}

	if kind == KindFloat {
		floats, err := toFloats(vals)
		if err != nil {
			return Sequence{}, err
		}
		return Sequence{kind: KindFloat, Floats: floats}, nil
	}

	ints, err := toInts(vals)
	if kind == KindInt {
		if err != nil {
			return Sequence{}, err
		}
		return Sequence{kind: KindInt, Ints: ints}, nil
	}

	if err == nil && sumsFitInt64(ints) {
		return Sequence{kind: KindInt, auto: true, Ints: ints}, nil
	}
	if err != nil && !errors.Is(err, ErrNotIntegral) {
		return Sequence{}, err
	}

	// auto: a fractional or out-of-range value, or a run sum that could
	// overflow int64, switches the whole sequence to float64.
	floats, err := toFloats(vals)
	if err != nil {
		return Sequence{}, err
	}
	return Sequence{kind: KindFloat, auto: true, Floats: floats}, nil
}

// sumsFitInt64 reports whether the sum of absolute values fits in int64.
// Every running sum Kadane forms is bounded by it, so none can wrap.
func sumsFitInt64(vals []int64) bool {
	var total int64
	for _, v := range vals {
		if v == math.MinInt64 {
			return false
		}
		if v < 0 {
			v = -v
		}
		if total > math.MaxInt64-v {
			return false
		}
		total += v
	}
	return true
}

func toFloats(vals []any) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		f, err := cast.ToFloat64E(normalize(v))
		if err != nil {
			return nil, fmt.Errorf("element %d (%v): %w", i, v, ErrBadNumber)
		}
		out[i] = f
	}
	return out, nil
}

func toInts(vals []any) ([]int64, error) {
	out := make([]int64, len(vals))
	for i, v := range vals {
		n, err := toInt64(normalize(v))
		if err != nil {
			return nil, fmt.Errorf("element %d (%v): %w", i, v, err)
		}
		out[i] = n
	}
	return out, nil
}

// toInt64 accepts only exact integers. Decimal strings are parsed directly
// so values beyond 2^53 keep full precision.
func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case string:
		if n, err := strconv.ParseInt(x, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, ErrBadNumber
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(x)
	case float32:
		return floatToInt64(float64(x))
	default:
		n, err := cast.ToInt64E(x)
		if err != nil {
			return 0, ErrBadNumber
		}
		return n, nil
	}
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotIntegral
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, ErrNotIntegral
	}
	return int64(f), nil
}

// invalid is a value cast refuses to convert.
type invalid struct{}

// normalize unwraps json.Number and trims strings so cast sees plain
// values. Booleans, nil and blank strings are rejected up front: cast
// would quietly turn them into 0 or 1.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		return normalize(x.String())
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return invalid{}
		}
		return x
	case bool, nil:
		return invalid{}
	default:
		return v
	}
}
