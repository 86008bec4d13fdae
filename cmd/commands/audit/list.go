package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/donorlens/internal/auditlog"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent fetch cycles",
		Long: `List recent dashboard fetch cycles stored locally.

Examples:
  donorlens audit list
  donorlens audit list --limit 50
  donorlens audit list --tab cohorts
  donorlens audit list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("tab", "", "Filter by dashboard tab")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	tab, _ := cmd.Flags().GetString("tab")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []auditlog.CycleEntry
	if tab = strings.TrimSpace(tab); tab != "" {
		entries, err = repo.ListByTab(strings.ToLower(tab), limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	return printEntries(cmd.OutOrStdout(), entries, output)
}

func printEntries(out io.Writer, entries []auditlog.CycleEntry, output string) error {
	if output == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No fetch cycles recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTAB\tSTATUS\tDURATION\tFAILED\tDETAIL")
	fmt.Fprintln(w, "----\t---\t------\t--------\t------\t------")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			entry.Tab,
			entry.Status,
			formatDuration(entry.DurationMs),
			formatFailed(entry),
			formatDetail(entry),
		)
	}
	return w.Flush()
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatFailed(entry auditlog.CycleEntry) string {
	if entry.Queries == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", len(entry.FailedQueries), entry.Queries)
}

func formatDetail(entry auditlog.CycleEntry) string {
	var parts []string
	if entry.Message != "" {
		parts = append(parts, entry.Message)
	}
	if len(entry.FailedQueries) > 0 {
		parts = append(parts, "failed: "+strings.Join(entry.FailedQueries, ","))
	}
	if entry.Synthetic {
		parts = append(parts, "sample data")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}
