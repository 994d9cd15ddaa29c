// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it opens the history store, builds the
// tools and registers them. No business logic lives here, only wiring.
package server

import (
	"log/slog"

	"github.com/HendryAvila/maxsub/internal/config"
	"github.com/HendryAvila/maxsub/internal/history"
	"github.com/HendryAvila/maxsub/internal/prompts"
	"github.com/HendryAvila/maxsub/internal/resources"
	"github.com/HendryAvila/maxsub/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
//
// The returned cleanup function closes the history store and must be
// called on shutdown (typically via defer). It is always non-nil and safe
// to call even if history is disabled or failed to open.
func New(cfg *config.Config, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := server.NewMCPServer(
		"maxsub",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	solveTool := tools.NewSolveTool()
	s.AddTool(solveTool.Definition(), solveTool.Handle)

	solvePrompt := prompts.NewSolvePrompt()
	s.AddPrompt(solvePrompt.Definition(), solvePrompt.Handle)

	// --- History ---
	//
	// History is an independent subsystem: if it is disabled or fails to
	// open, max_subarray_sum keeps working without recording.

	cleanup := noop
	if !cfg.History.Enabled {
		logger.Info("history disabled by config")
		return s, cleanup, nil
	}

	store, err := history.New(history.Config{
		DataDir:        cfg.DataDir,
		MaxInputLength: cfg.History.MaxInputLength,
		RecentLimit:    cfg.History.RecentLimit,
	})
	if err != nil {
		logger.Warn("history subsystem disabled", "err", err)
		return s, cleanup, nil
	}

	cleanup = func() {
		if err := store.Close(); err != nil {
			logger.Warn("history store close", "err", err)
		}
	}
	solveTool.SetRecorder(store)
	registerHistoryTools(s, store)
	logger.Debug("history enabled", "dir", cfg.DataDir)

	return s, cleanup, nil
}

func registerHistoryTools(s *server.MCPServer, store *history.Store) {
	historyTool := tools.NewHistoryTool(store)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	statsTool := tools.NewStatsTool(store)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	forgetTool := tools.NewForgetTool(store)
	s.AddTool(forgetTool.Definition(), forgetTool.Handle)

	rh := resources.NewHandler(store)
	s.AddResource(rh.StatsResource(), rh.HandleStats)
	s.AddResource(rh.RecentResource(), rh.HandleRecent)
}

func noop() {}

func serverInstructions() string {
	return `maxsub computes the maximum sum of any contiguous, non-empty run of numbers.

## Tools
- max_subarray_sum: pass "numbers" as a JSON array. Returns the sum, the run
  that produces it and its bounds [start, end). Use kind="int" for exact
  64-bit integer arithmetic or kind="float" for decimals; "auto" (default)
  picks int when every value is a whole number and no sum can overflow
  int64, float otherwise. Send integers beyond 2^53 as decimal strings.
- subarray_history: list earlier computations or show one by id.
- subarray_stats: totals, rejected inputs and the best sum seen.
- subarray_forget: delete one computation or all of them.

## Resources
- maxsub://history/stats and maxsub://history/recent expose the same
  history as JSON when history is enabled.

## Semantics
- All-negative input returns the largest (least negative) element, never 0.
- An empty array is INVALID INPUT and returns a tool error. Do not report 0
  to the user for an empty sequence; ask for data instead.
- With kind="int" sums are not overflow-checked and wrap; leave kind on
  "auto" for magnitudes near the int64 limits.`
}
