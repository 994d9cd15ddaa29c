package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/maxsub/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryTool handles the subarray_history MCP tool.
type HistoryTool struct {
	store *history.Store
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(store *history.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for subarray_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("subarray_history",
		mcp.WithDescription(
			"List recent max_subarray_sum computations, newest first, or show one in full by id.",
		),
		mcp.WithString("id",
			mcp.Description("Show this record in full instead of listing"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max records to list (default from config)"),
		),
	)
}

// Handle processes the subarray_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if id := strings.TrimSpace(req.GetString("id", "")); id != "" {
		return t.show(id)
	}

	records, err := t.store.Recent(intArg(req, "limit", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list history: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No computations recorded yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d computations:\n\n", len(records))
	for i, rec := range records {
		fmt.Fprintf(&b, "[%d] %s (%s, %d elements) %s\n    %s\n    %s\n\n",
			i+1, rec.ID, rec.Kind, rec.Length, rec.CreatedAt,
			previewInput(rec, 20),
			outcome(rec),
		)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (t *HistoryTool) show(id string) (*mcp.CallToolResult, error) {
	rec, err := t.store.Get(id)
	if errors.Is(err, history.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no computation with id %q", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load computation: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Computation %s\n\n", rec.ID)
	fmt.Fprintf(&b, "- **Kind**: %s\n", rec.Kind)
	fmt.Fprintf(&b, "- **Recorded**: %s\n", rec.CreatedAt)
	fmt.Fprintf(&b, "- **Length**: %d\n", rec.Length)
	fmt.Fprintf(&b, "- **Result**: %s\n", outcome(*rec))
	if rec.Truncated {
		fmt.Fprintf(&b, "- **Stored input**: first %d elements only\n", len(rec.Input))
	}
	fmt.Fprintf(&b, "\n```\n%s\n```\n", previewInput(*rec, len(rec.Input)))
	return mcp.NewToolResultText(b.String()), nil
}
