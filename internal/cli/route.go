package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/web"
)

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var repeat int

	cmd := &cobra.Command{
		Use:   "route FILE SRC DST",
		Short: "Find a shortest route between two nodes",
		Long: `Find a shortest route between two nodes of the web in FILE.

Every successful query caches the route on the links it crossed. With
--repeat the same query runs several times, showing how later runs follow
the cached route instead of flooding the web.`,
		Example: `  spiderweb route input.txt jqt rsh
  spiderweb route input.txt jqt rsh --repeat 3 -v`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.loadWeb(args[0])
			if err != nil {
				return err
			}
			for i := 0; i < max(repeat, 1); i++ {
				if err := routeOnce(cmd.Context(), cmd.OutOrStdout(), w, args[1], args[2]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.ValidArgsFunction = completeNodes
	cmd.Flags().IntVarP(&repeat, "repeat", "n", 1, "run the query N times")
	return cmd
}

// routeOnce runs one query and prints the outcome. A disconnected pair is
// reported as a DISCONNECTED error.
func routeOnce(ctx context.Context, out io.Writer, w *web.Web, from, to string) error {
	src, err := w.Resolve(from)
	if err != nil {
		return err
	}
	dst, err := w.Resolve(to)
	if err != nil {
		return err
	}

	route, err := w.FindPath(ctx, src, dst)
	if err != nil {
		return err
	}
	if !route.Found {
		return swerr.Wrap(swerr.ErrCodeDisconnected, web.ErrDisconnected, "no route from %q to %q", from, to)
	}
	printRoute(out, w.Names(route.Path))
	printRouteStats(out, route.Hops(), route.Rounds, route.Commits)
	return nil
}
