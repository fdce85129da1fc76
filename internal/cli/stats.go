package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		traffic bool
		top     int
	)

	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Summarize the web",
		Long: `Print node, link and component counts for the web in FILE.

With --traffic every pair of nodes is routed first, so each link accumulates
the routes that cross it. The busiest links are then listed. This takes time
quadratic in the number of nodes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			w, err := c.loadWeb(args[0])
			if err != nil {
				return err
			}

			comps := w.Components()
			largest := 0
			for _, comp := range comps {
				largest = max(largest, int(comp.GetCardinality()))
			}
			printKeyValue(out, "nodes", strconv.Itoa(w.NodeCount()))
			printKeyValue(out, "links", strconv.Itoa(w.EdgeCount()))
			printKeyValue(out, "components", strconv.Itoa(len(comps)))
			printKeyValue(out, "largest", strconv.Itoa(largest))

			if !traffic {
				return nil
			}

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			spinner := newSpinnerWithContext(cmd.Context(), cmd.ErrOrStderr(), "Routing all pairs...")
			spinner.Start()
			connected, err := w.RouteAll(cmd.Context(), func(done, total int) {
				spinner.SetMessage(fmt.Sprintf("Routing all pairs... %d/%d", done, total))
			})
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Routed %d connected pairs", connected))

			var rows [][]string
			for _, l := range w.BusiestLinks(top) {
				rows = append(rows, []string{
					w.Name(l.One) + " - " + w.Name(l.Two),
					strconv.Itoa(l.Up),
					strconv.Itoa(l.Down),
					strconv.Itoa(l.Traffic()),
				})
			}
			printTable(out, []string{"Link", "Up", "Down", "Total"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&traffic, "traffic", false, "route every pair and list the busiest links")
	cmd.Flags().IntVar(&top, "top", 10, "number of links to list with --traffic")
	return cmd
}
