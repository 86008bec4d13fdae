package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/donorlens/internal/dashboard/bundles"
	"nathanbeddoewebdev/donorlens/internal/dashboard/projector"
	"nathanbeddoewebdev/donorlens/internal/dashboard/view"
	"nathanbeddoewebdev/donorlens/internal/format"
	"nathanbeddoewebdev/donorlens/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [tab...]",
		Short: "Show one or more dashboard tabs",
		Long: `Show dashboard tabs.

In a terminal without --output, an interactive dashboard opens on the first
tab given. Otherwise the tabs are fetched once and printed.

Examples:
  donorlens dashboard show
  donorlens dashboard show cashflow
  donorlens dashboard show revenue cohorts -o json
  donorlens dashboard show --all -o table`,
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "", "Output format: table or json")
	cmd.Flags().Bool("all", false, "Show every tab")

	return cmd
}

// tabResult is one tab in JSON output.
type tabResult struct {
	View    view.ViewModel    `json:"view"`
	Summary []projector.Stat  `json:"summary"`
	Charts  []projector.Chart `json:"charts"`
}

func runShow(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	all, _ := cmd.Flags().GetBool("all")

	tabs, err := selectTabs(args, all)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if output == "" && isTerminal(cmd.OutOrStdout()) {
		return tui.RunDashboard(ctx, a.Assembler(), a.Organization(), tabs[0])
	}
	if output == "" {
		output = "table"
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	assembler := a.Assembler()
	models := make([]view.ViewModel, len(tabs))
	load := func(ctx context.Context) error {
		var g errgroup.Group
		for i, tab := range tabs {
			g.Go(func() error {
				models[i] = assembler.Load(ctx, tab)
				return nil
			})
		}
		return g.Wait()
	}

	if errOut := cmd.ErrOrStderr(); isTerminal(errOut) {
		err = spinner.New().
			Title("Loading dashboards...").
			Accessible(os.Getenv("ACCESSIBLE") != "").
			Output(errOut).
			ActionWithErr(load).
			Run()
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("aborted")
		}
	} else {
		err = load(ctx)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		results := make([]tabResult, len(models))
		for i, vm := range models {
			results[i] = tabResult{View: vm, Summary: projector.Summary(vm), Charts: projector.Project(vm)}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		printTables(cmd.OutOrStdout(), models)
	}

	failed := 0
	for _, vm := range models {
		if vm.Status == view.StatusError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tab(s) failed to load", failed, len(models))
	}
	return nil
}

// selectTabs validates names, defaulting to the first tab or, with all,
// every tab.
func selectTabs(names []string, all bool) ([]string, error) {
	if all {
		return bundles.List(), nil
	}
	if len(names) == 0 {
		return bundles.List()[:1], nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		def, err := bundles.Get(n)
		if err != nil {
			return nil, fmt.Errorf("%w (valid: %s)", err, strings.Join(bundles.List(), ", "))
		}
		out = append(out, def.Name)
	}
	return out, nil
}

func printTables(out io.Writer, models []view.ViewModel) {
	for i, vm := range models {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (%s)\n", vm.Title, vm.Status)

		if vm.Status == view.StatusError {
			fmt.Fprintf(out, "  %s\n", vm.Message)
			continue
		}
		if len(vm.FailedQueries) > 0 {
			fmt.Fprintf(out, "  unavailable: %s\n", strings.Join(vm.FailedQueries, ", "))
		}
		if vm.Synthetic {
			fmt.Fprintln(out, "  sample data shown where live data was unavailable")
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, s := range projector.Summary(vm) {
			fmt.Fprintf(w, "  %s\t%s\n", s.Label, formatStat(s))
		}
		if peak := projector.PeakMonth(vm); peak != "" {
			fmt.Fprintf(w, "  Peak month\t%s\n", peak)
		}
		w.Flush()
	}
}

func formatStat(s projector.Stat) string {
	switch s.Unit {
	case "$":
		return format.Currency(s.Value)
	case "%":
		return format.Percent(s.Value)
	}
	if s.Value == float64(int64(s.Value)) {
		return format.Number(s.Value)
	}
	return fmt.Sprintf("%.2f", s.Value)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
