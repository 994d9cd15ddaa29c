// maxsub: maximum subarray sum as a CLI and an MCP server.
//
// Usage:
//
//	maxsub serve                  # Start MCP server (stdio transport)
//	maxsub solve -- -2 1 -3 4     # Solve from arguments
//	echo "[1,-2,3]" | maxsub solve
//	maxsub history                # Show recent computations
//	maxsub config init            # Write config.yaml with defaults
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/maxsub/internal/config"
	sumserver "github.com/HendryAvila/maxsub/internal/server"
)

// exitError carries a process exit status without extra output.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if ee, ok := err.(exitError); ok {
			os.Exit(ee.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds state shared by all subcommands.
type app struct {
	dataDir string // --data-dir flag
	home    string // resolved data directory holding config.yaml
	configs config.Store
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(config.NewFileStore())
}

func newRootCmdWith(configs config.Store) *cobra.Command {
	a := &app{configs: configs}

	root := &cobra.Command{
		Use:   "maxsub",
		Short: "Maximum contiguous subarray sum (Kadane's algorithm)",
		Long: `maxsub finds the largest sum of any contiguous, non-empty run of numbers.

An all-negative sequence yields its largest element. An empty sequence is
invalid input and exits with status 1; it never prints 0.

Configuration is read from $MAXSUB_HOME/config.yaml (default ~/.maxsub).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       sumserver.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Data directory (default: $MAXSUB_HOME or ~/.maxsub)")

	root.AddCommand(
		newServeCmd(a),
		newSolveCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads the config and builds the stderr logger. Stdout is reserved
// for command output and the MCP transport.
func (a *app) load(stderr io.Writer) error {
	dir := a.dataDir
	if dir == "" {
		dir = config.DataDir()
	}
	cfg, err := a.configs.Load(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, _ := cfg.Level()

	a.home = dir
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Start the MCP server on stdin/stdout.

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "maxsub": {
        "command": "maxsub",
        "args": ["serve"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := sumserver.New(a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()

			a.logger.Info("serving", "version", sumserver.Version, "data_dir", a.cfg.DataDir)
			return serveStdio(s)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "maxsub v%s\n", sumserver.Version)
		},
	}
}
