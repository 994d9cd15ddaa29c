package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/maxsub/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// ForgetTool handles the subarray_forget MCP tool.
type ForgetTool struct {
	store *history.Store
}

// NewForgetTool creates a ForgetTool.
func NewForgetTool(store *history.Store) *ForgetTool {
	return &ForgetTool{store: store}
}

// Definition returns the MCP tool definition for subarray_forget.
func (t *ForgetTool) Definition() mcp.Tool {
	return mcp.NewTool("subarray_forget",
		mcp.WithDescription(
			"Delete one computation from history by id, or all of them with all=true.",
		),
		mcp.WithString("id",
			mcp.Description("Record to delete"),
		),
		mcp.WithBoolean("all",
			mcp.Description("Delete every record (default: false)"),
		),
	)
}

// Handle processes the subarray_forget tool call.
func (t *ForgetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	all := boolArg(req, "all", false)

	switch {
	case id != "" && all:
		return mcp.NewToolResultError("pass either 'id' or 'all', not both"), nil
	case all:
		n, err := t.store.Clear()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to clear history: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted %d computations.", n)), nil
	case id != "":
		err := t.store.Delete(id)
		if errors.Is(err, history.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no computation with id %q", id)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to delete: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted computation %s.", id)), nil
	default:
		return mcp.NewToolResultError("'id' or 'all' is required"), nil
	}
}
