// Package tools implements the MCP tool handlers for maxsub.
//
// Each tool is a struct holding its dependencies, with a constructor,
// a Definition() returning the mcp.Tool schema and a Handle() method
// compatible with mcp-go's CallToolRequest signature. One file per tool.
package tools

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/maxsub/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// previewInput renders at most limit elements of a stored input.
func previewInput(rec history.Record, limit int) string {
	elems := rec.Input
	more := rec.Length - len(elems)
	if len(elems) > limit {
		more += len(elems) - limit
		elems = elems[:limit]
	}
	s := "[" + strings.Join(elems, ", ")
	if more > 0 {
		s += fmt.Sprintf(", … +%d more", more)
	}
	return s + "]"
}

// outcome is the one-line result of a stored computation.
func outcome(rec history.Record) string {
	if rec.Failed() {
		return "error: " + *rec.Error
	}
	return fmt.Sprintf("sum %s at [%d:%d]", *rec.Sum, rec.Start, rec.End)
}
