// Package resources implements MCP resource handlers for maxsub.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (maxsub://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/maxsub/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	StatsURI  = "maxsub://history/stats"
	RecentURI = "maxsub://history/recent"
)

// Handler manages history resource endpoints.
type Handler struct {
	store *history.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store *history.Store) *Handler {
	return &Handler{store: store}
}

// StatsResource returns the MCP resource definition for history stats.
func (h *Handler) StatsResource() mcp.Resource {
	return mcp.NewResource(
		StatsURI,
		"Computation Statistics",
		mcp.WithResourceDescription("Totals, rejected inputs, counts per kind and the best sum seen"),
		mcp.WithMIMEType("application/json"),
	)
}

// RecentResource returns the MCP resource definition for recent records.
func (h *Handler) RecentResource() mcp.Resource {
	return mcp.NewResource(
		RecentURI,
		"Recent Computations",
		mcp.WithResourceDescription("The most recent max_subarray_sum computations, newest first"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStats returns history statistics as JSON.
func (h *Handler) HandleStats(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := h.store.Stats()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, stats)
}

// HandleRecent returns the configured number of recent records as JSON.
func (h *Handler) HandleRecent(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.store.Recent(0)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if records == nil {
		records = []history.Record{}
	}
	return jsonResource(req.Params.URI, records)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
