package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/maxsub/internal/history"
	"github.com/HendryAvila/maxsub/internal/numparse"
	"github.com/HendryAvila/maxsub/internal/subarray"
)

type solveOptions struct {
	kind     string
	asJSON   bool
	noRecord bool
}

// solveOutput is the --json shape.
type solveOutput struct {
	numparse.Result
	Run      []string `json:"run"`
	Length   int      `json:"length"`
	RecordID string   `json:"record_id,omitempty"`
}

func newSolveCmd(a *app) *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve [-- numbers...]",
		Short: "Print the maximum subarray sum of a sequence",
		Long: `Print the maximum sum of any contiguous, non-empty run of the given numbers.

Numbers come from the arguments, or from stdin when there are none. They may
be separated by spaces, commas, semicolons or newlines, and may be wrapped in
[ ]. Put "--" before the first negative number so it is not read as a flag.`,
		Example: `  maxsub solve -- -2 1 -3 4 -1 2 1 -5 4
  maxsub solve --kind float "[0.5, -1.25, 2]"
  seq 1 10 | maxsub solve --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(data)
			}
			return a.solve(cmd, text, opts)
		},
	}
	cmd.Flags().StringVar(&opts.kind, "kind", string(numparse.KindAuto), "Element type: auto, int or float")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&opts.noRecord, "no-record", false, "Do not save this computation to history")
	return cmd
}

func (a *app) solve(cmd *cobra.Command, text string, opts *solveOptions) error {
	kind, err := numparse.ParseKind(opts.kind)
	if err != nil {
		return err
	}
	seq, err := numparse.ParseText(text, kind)
	if err != nil {
		return fmt.Errorf("parsing numbers: %w", err)
	}

	result, solveErr := seq.Solve()

	var recordID string
	if !opts.noRecord && a.cfg.History.Enabled {
		recordID = a.record(seq, result, solveErr)
	}

	if errors.Is(solveErr, subarray.ErrInvalidInput) {
		fmt.Fprintln(cmd.ErrOrStderr(), "invalid input: the sequence is empty")
		return exitError{code: 1}
	}
	if solveErr != nil {
		return solveErr
	}

	elems := seq.Strings()
	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(solveOutput{
			Result:   result,
			Run:      elems[result.Start:result.End],
			Length:   seq.Len(),
			RecordID: recordID,
		})
	}

	fmt.Fprintln(out, result.Sum)
	a.logger.Debug("solved",
		"kind", result.Kind, "start", result.Start, "end", result.End, "record", recordID)
	return nil
}

// record opens the history store for one computation. Failures only warn.
func (a *app) record(seq numparse.Sequence, result numparse.Result, solveErr error) string {
	store, err := history.New(a.historyConfig())
	if err != nil {
		a.logger.Warn("history unavailable", "err", err)
		return ""
	}
	defer func() { _ = store.Close() }()

	rec, err := store.Add(history.AddParams{
		Kind:  string(seq.Kind()),
		Input: seq.Strings(),
		Sum:   result.Sum,
		Start: result.Start,
		End:   result.End,
		Err:   solveErr,
	})
	if err != nil {
		a.logger.Warn("history: record computation", "err", err)
		return ""
	}
	return rec.ID
}

func (a *app) historyConfig() history.Config {
	return history.Config{
		DataDir:        a.cfg.DataDir,
		MaxInputLength: a.cfg.History.MaxInputLength,
		RecentLimit:    a.cfg.History.RecentLimit,
	}
}
