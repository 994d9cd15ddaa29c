package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/maxsub/internal/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent computations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.historyEnabled(cmd) {
				return nil
			}
			store, err := history.New(a.historyConfig())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No computations recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tLEN\tRESULT\tRECORDED")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", rec.ID, rec.Kind, rec.Length, resultColumn(rec), rec.CreatedAt)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max records to show (default from config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded computation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.historyEnabled(cmd) {
				return nil
			}
			store, err := history.New(a.historyConfig())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := store.Clear()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d computations.\n", n)
			return nil
		},
	})
	return cmd
}

// historyEnabled reports whether history is on, telling the user when it
// is not. A disabled history never creates history.db.
func (a *app) historyEnabled(cmd *cobra.Command) bool {
	if a.cfg.History.Enabled {
		return true
	}
	fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (history.enabled: false in config.yaml).")
	return false
}

func resultColumn(rec history.Record) string {
	if rec.Failed() {
		return "invalid: " + strings.TrimPrefix(*rec.Error, "subarray: ")
	}
	return fmt.Sprintf("%s [%d:%d]", *rec.Sum, rec.Start, rec.End)
}
