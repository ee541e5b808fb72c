package jsoncloak

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jsoncloak/jsoncloak/internal/audit"
)

var historyLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in the audit log of the data directory",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", 20, "show at most this many runs (0 = all)")
	rootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := currentSettings()
	if err != nil {
		return err
	}
	root, err := filepath.Abs(s.DataDir)
	if err != nil {
		return err
	}
	recs, err := audit.NewAuditLog(root).LoadHistory()
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded (enable with --audit)")
		return nil
	}
	if err != nil {
		return err
	}
	if historyLimit > 0 && len(recs) > historyLimit {
		recs = recs[:historyLimit]
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("WHEN", "RUN", "FILES", "ENCRYPTED", "RENAMED", "FAILED", "DURATION")
	for _, r := range recs {
		id := r.RunID
		if len(id) > 8 {
			id = id[:8]
		}
		if r.DryRun {
			id += " (dry)"
		}
		_ = table.Append([]string{
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			id,
			strconv.Itoa(r.FilesFound),
			strconv.Itoa(r.Summary.Encrypted),
			strconv.Itoa(r.Summary.Renamed),
			strconv.Itoa(r.Summary.Failed),
			r.Duration,
		})
	}
	return table.Render()
}
