package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HendryAvila/maxsub/internal/history"
	"github.com/HendryAvila/maxsub/internal/numparse"
	"github.com/HendryAvila/maxsub/internal/subarray"
	"github.com/mark3labs/mcp-go/mcp"
)

// Recorder persists computations. It's an optional dependency: SolveTool
// works fine without one.
type Recorder interface {
	Add(p history.AddParams) (*history.Record, error)
}

// SolveTool handles the max_subarray_sum MCP tool.
type SolveTool struct {
	recorder Recorder
}

// NewSolveTool creates a SolveTool with no recorder.
func NewSolveTool() *SolveTool {
	return &SolveTool{}
}

// SetRecorder enables history recording. A nil recorder disables it.
func (t *SolveTool) SetRecorder(r Recorder) {
	t.recorder = r
}

// Definition returns the MCP tool definition for registration.
func (t *SolveTool) Definition() mcp.Tool {
	return mcp.NewTool("max_subarray_sum",
		mcp.WithDescription(
			"Find the maximum sum of any contiguous, non-empty run of a sequence of numbers "+
				"(Kadane's algorithm, linear time). Returns the sum and the run that produces it. "+
				"An all-negative sequence returns its largest element. An empty sequence is "+
				"rejected as invalid input; it never returns 0.",
		),
		mcp.WithArray("numbers",
			mcp.Required(),
			mcp.Description("The sequence, in order. Integers or decimals. JSON numbers beyond 2^53 "+
				"lose precision in transit; pass such integers as decimal strings to keep them exact."),
			mcp.Items(map[string]any{"anyOf": []any{
				map[string]any{"type": "number"},
				map[string]any{"type": "string"},
			}}),
		),
		mcp.WithString("kind",
			mcp.Description("Element type: 'int' (64-bit integers, sums wrap on overflow), 'float' (doubles) or "+
				"'auto' (int unless a value has a fractional part or a sum could overflow int64). Defaults to 'auto'."),
			mcp.DefaultString(string(numparse.KindAuto)),
			mcp.Enum(string(numparse.KindAuto), string(numparse.KindInt), string(numparse.KindFloat)),
		),
		mcp.WithBoolean("record",
			mcp.Description("Save this computation to history (default: true)."),
		),
	)
}

// Handle processes the max_subarray_sum tool call.
func (t *SolveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, present := req.GetArguments()["numbers"]
	if !present || raw == nil {
		return mcp.NewToolResultError("'numbers' is required"), nil
	}
	vals, ok := raw.([]any)
	if !ok {
		return mcp.NewToolResultError("'numbers' must be an array of numbers"), nil
	}

	kind, err := numparse.ParseKind(req.GetString("kind", string(numparse.KindAuto)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	seq, err := numparse.FromAny(vals, kind)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid 'numbers': %v", err)), nil
	}

	result, solveErr := seq.Solve()

	var recordID string
	if boolArg(req, "record", true) {
		recordID = t.record(seq, result, solveErr)
	}

	if solveErr != nil {
		if errors.Is(solveErr, subarray.ErrInvalidInput) {
			return mcp.NewToolResultError(
				"Invalid input: the sequence is empty. A maximum subarray needs at least one element, " +
					"so there is no sum to report (0 would be misleading).",
			), nil
		}
		return nil, fmt.Errorf("solving: %w", solveErr)
	}

	return mcp.NewToolResultText(formatResult(seq, result, recordID)), nil
}

// record is best-effort: a history failure is logged, never surfaced.
func (t *SolveTool) record(seq numparse.Sequence, result numparse.Result, solveErr error) string {
	if t.recorder == nil {
		return ""
	}
	rec, err := t.recorder.Add(history.AddParams{
		Kind:  string(seq.Kind()),
		Input: seq.Strings(),
		Sum:   result.Sum,
		Start: result.Start,
		End:   result.End,
		Err:   solveErr,
	})
	if err != nil {
		slog.Warn("history: record computation", "err", err)
		return ""
	}
	return rec.ID
}

func formatResult(seq numparse.Sequence, r numparse.Result, recordID string) string {
	elems := seq.Strings()

	var b strings.Builder
	b.WriteString("# Maximum Subarray Sum\n\n")
	fmt.Fprintf(&b, "**Sum:** %s\n", r.Sum)
	fmt.Fprintf(&b, "**Run:** [%s]\n", strings.Join(elems[r.Start:r.End], ", "))
	fmt.Fprintf(&b, "**Bounds:** start=%d, end=%d (exclusive), length=%d of %d\n", r.Start, r.End, r.End-r.Start, seq.Len())
	if r.Auto {
		fmt.Fprintf(&b, "**Kind:** %s (auto)\n", r.Kind)
	} else {
		fmt.Fprintf(&b, "**Kind:** %s\n", r.Kind)
	}
	if recordID != "" {
		fmt.Fprintf(&b, "\nSaved to history as `%s`.\n", recordID)
	}
	return b.String()
}
