package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/HendryAvila/maxsub/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatsTool handles the subarray_stats MCP tool.
type StatsTool struct {
	store *history.Store
}

// NewStatsTool creates a StatsTool with the given history store.
func NewStatsTool(store *history.Store) *StatsTool {
	return &StatsTool{store: store}
}

// Definition returns the MCP tool definition for subarray_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("subarray_stats",
		mcp.WithDescription(
			"Show history statistics: computations recorded, rejected inputs, counts per element kind and the best sum seen.",
		),
	)
}

// Handle processes the subarray_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.store.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("## History Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- **Computations**: %d\n", stats.Total))
	sb.WriteString(fmt.Sprintf("- **Rejected (empty input)**: %d\n", stats.Failures))

	if len(stats.ByKind) > 0 {
		kinds := make([]string, 0, len(stats.ByKind))
		for k := range stats.ByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		parts := make([]string, len(kinds))
		for i, k := range kinds {
			parts[i] = fmt.Sprintf("%s=%d", k, stats.ByKind[k])
		}
		sb.WriteString(fmt.Sprintf("- **By kind**: %s\n", strings.Join(parts, ", ")))
	}

	if stats.BestSum != nil {
		sb.WriteString(fmt.Sprintf("- **Best sum**: %s (`%s`)\n", *stats.BestSum, *stats.BestID))
	} else {
		sb.WriteString("- **Best sum**: none\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
