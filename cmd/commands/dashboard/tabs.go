package dashboard

import (
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/donorlens/internal/dashboard/bundles"

	"github.com/spf13/cobra"
)

func TabsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "List dashboard tabs and the queries behind them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TAB\tTITLE\tQUERIES")
			fmt.Fprintln(w, "---\t-----\t-------")
			for _, name := range bundles.List() {
				def, err := bundles.Get(name)
				if err != nil {
					return err
				}
				queries := ""
				for i, e := range def.Endpoints {
					if i > 0 {
						queries += ", "
					}
					queries += e.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Title, queries)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}
}
