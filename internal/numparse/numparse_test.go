package numparse

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/HendryAvila/maxsub/internal/subarray"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindAuto, false},
		{"auto", KindAuto, false},
		{"INT", KindInt, false},
		{" float ", KindFloat, false},
		{"decimal", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownKind) {
				t.Errorf("ParseKind(%q) error = %v, want ErrUnknownKind", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseKind(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseText_Separators(t *testing.T) {
	want := []int64{-2, 1, -3, 4}
	inputs := []string{
		"-2 1 -3 4",
		"-2,1,-3,4",
		"[-2, 1, -3, 4]",
		"-2\n1\r\n-3\t4\n",
		"-2; 1; -3; 4",
	}
	for _, in := range inputs {
		seq, err := ParseText(in, KindAuto)
		if err != nil {
			t.Fatalf("ParseText(%q) error: %v", in, err)
		}
		if seq.Kind() != KindInt {
			t.Errorf("ParseText(%q) kind = %s, want int", in, seq.Kind())
		}
		if diff := cmp.Diff(want, seq.Ints); diff != "" {
			t.Errorf("ParseText(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestParseText_AutoSwitchesToFloat(t *testing.T) {
	seq, err := ParseText("1 2.5 -3", KindAuto)
	if err != nil {
		t.Fatalf("ParseText error: %v", err)
	}
	if seq.Kind() != KindFloat {
		t.Fatalf("kind = %s, want float", seq.Kind())
	}
	if diff := cmp.Diff([]float64{1, 2.5, -3}, seq.Floats); diff != "" {
		t.Errorf("floats mismatch (-want +got):\n%s", diff)
	}
}

func TestParseText_ForcedInt(t *testing.T) {
	if _, err := ParseText("1 2.5", KindInt); !errors.Is(err, ErrNotIntegral) {
		t.Errorf("error = %v, want ErrNotIntegral", err)
	}

	seq, err := ParseText("4.0 1e2", KindInt)
	if err != nil {
		t.Fatalf("ParseText error: %v", err)
	}
	if diff := cmp.Diff([]int64{4, 100}, seq.Ints); diff != "" {
		t.Errorf("ints mismatch (-want +got):\n%s", diff)
	}
}

func TestParseText_KeepsInt64Precision(t *testing.T) {
	seq, err := ParseText("9007199254740993 -1", KindAuto)
	if err != nil {
		t.Fatalf("ParseText error: %v", err)
	}
	if seq.Ints[0] != 9007199254740993 {
		t.Errorf("first = %d, want 9007199254740993", seq.Ints[0])
	}
}

func TestParseText_BadNumber(t *testing.T) {
	for _, kind := range []Kind{KindAuto, KindInt, KindFloat} {
		if _, err := ParseText("1 two 3", kind); !errors.Is(err, ErrBadNumber) {
			t.Errorf("kind %s: error = %v, want ErrBadNumber", kind, err)
		}
	}
}

func TestParseText_BlankIsEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "[]", "[ ]"} {
		seq, err := ParseText(in, KindAuto)
		if err != nil {
			t.Fatalf("ParseText(%q) error: %v", in, err)
		}
		if seq.Len() != 0 {
			t.Errorf("ParseText(%q) len = %d, want 0", in, seq.Len())
		}
	}
}

func TestFromAny_JSONValues(t *testing.T) {
	var vals []any
	if err := json.Unmarshal([]byte(`[-2, 1, -3, 4, -1, 2, 1, -5, 4]`), &vals); err != nil {
		t.Fatal(err)
	}
	seq, err := FromAny(vals, KindAuto)
	if err != nil {
		t.Fatalf("FromAny error: %v", err)
	}
	if seq.Kind() != KindInt || seq.Len() != 9 {
		t.Fatalf("kind=%s len=%d, want int/9", seq.Kind(), seq.Len())
	}

	vals = []any{json.Number("3"), "4", 5, int32(-1)}
	seq, err = FromAny(vals, KindAuto)
	if err != nil {
		t.Fatalf("FromAny mixed error: %v", err)
	}
	if diff := cmp.Diff([]int64{3, 4, 5, -1}, seq.Ints); diff != "" {
		t.Errorf("ints mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAny_RejectsNonNumbers(t *testing.T) {
	cases := [][]any{
		{1, true},
		{1, nil},
		{1, ""},
		{1, map[string]any{}},
	}
	for _, vals := range cases {
		for _, kind := range []Kind{KindAuto, KindFloat} {
			if _, err := FromAny(vals, kind); !errors.Is(err, ErrBadNumber) {
				t.Errorf("FromAny(%v, %s) error = %v, want ErrBadNumber", vals, kind, err)
			}
		}
	}
}

func TestSequence_Solve(t *testing.T) {
	seq, err := ParseText("-2 1 -3 4 -1 2 1 -5 4", KindAuto)
	if err != nil {
		t.Fatal(err)
	}
	got, err := seq.Solve()
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	want := Result{Kind: KindInt, Auto: true, Sum: "6", Start: 3, End: 7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Solve mismatch (-want +got):\n%s", diff)
	}

	seq, err = ParseText("-0.5 -0.25", KindFloat)
	if err != nil {
		t.Fatal(err)
	}
	got, err = seq.Solve()
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	want = Result{Kind: KindFloat, Sum: "-0.25", Start: 1, End: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Solve mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAny_AutoAvoidsIntOverflow(t *testing.T) {
	vals := make([]any, 10)
	for i := range vals {
		vals[i] = 1e18
	}

	seq, err := FromAny(vals, KindAuto)
	if err != nil {
		t.Fatalf("FromAny error: %v", err)
	}
	if seq.Kind() != KindFloat || !seq.Auto() {
		t.Fatalf("kind=%s auto=%v, want float picked by auto", seq.Kind(), seq.Auto())
	}
	got, err := seq.Solve()
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	want := Result{Kind: KindFloat, Auto: true, Sum: "1e+19", Start: 0, End: 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Solve mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAny_AutoKeepsIntAtInt64Limit(t *testing.T) {
	seq, err := ParseText("9223372036854775806 1", KindAuto)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Kind() != KindInt {
		t.Fatalf("kind = %s, want int", seq.Kind())
	}
	got, err := seq.Solve()
	if err != nil {
		t.Fatal(err)
	}
	if got.Sum != "9223372036854775807" || got.End != 2 {
		t.Errorf("Solve = %+v, want sum MaxInt64 over both elements", got)
	}

	seq, err = ParseText("9223372036854775807 1", KindAuto)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Kind() != KindFloat {
		t.Errorf("kind = %s, want float once a run sum could exceed int64", seq.Kind())
	}
}

func TestFromAny_ForcedKindIsNotAuto(t *testing.T) {
	seq, err := ParseText("9223372036854775807 1", KindInt)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Kind() != KindInt || seq.Auto() {
		t.Errorf("kind=%s auto=%v, want forced int", seq.Kind(), seq.Auto())
	}
}

func TestParseText_UnbalancedBrackets(t *testing.T) {
	for _, in := range []string{"[1, 2", "1, 2]", "[1, [2]", "1 ] 2", "]["} {
		if _, err := ParseText(in, KindAuto); !errors.Is(err, ErrBadNumber) {
			t.Errorf("ParseText(%q) error = %v, want ErrBadNumber", in, err)
		}
	}
}

func TestSequence_SolveEmpty(t *testing.T) {
	seq, err := ParseText("", KindAuto)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := seq.Solve(); !errors.Is(err, subarray.ErrInvalidInput) {
		t.Errorf("Solve(empty) error = %v, want subarray.ErrInvalidInput", err)
	}
}

func TestSequence_Strings(t *testing.T) {
	seq, _ := ParseText("1 -2.5", KindAuto)
	if diff := cmp.Diff([]string{"1", "-2.5"}, seq.Strings()); diff != "" {
		t.Errorf("Strings mismatch (-want +got):\n%s", diff)
	}
}
