package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/web"
)

// cutCommand creates the cut command.
func (c *CLI) cutCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "cut FILE A B [C D ...]",
		Short: "Remove links and report the resulting components",
		Long: `Remove the links A-B, C-D, ... from the web in FILE, then list the
connected components that remain. When exactly two components remain, their
sizes and the product of the sizes are printed.

Removing a link that does not exist is reported as a warning. With --from and
--to a route query runs after the cut.`,
		Example: `  spiderweb cut input.txt hfx pzl bvb cmg nvd jqt
  spiderweb cut input.txt E H --from D --to I`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 || len(args)%2 == 0 {
				return swerr.New(swerr.ErrCodeInvalidEdgeRemoval, "expected FILE followed by pairs of node names, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			w, err := c.loadWeb(args[0])
			if err != nil {
				return err
			}

			pairs := args[1:]
			for i := 0; i < len(pairs); i += 2 {
				removed, err := w.RemoveEdgeByName(ctx, pairs[i], pairs[i+1])
				if err != nil {
					return err
				}
				if removed {
					printSuccess(out, "Cut %s %s %s", pairs[i], StyleDim.Render("-"), pairs[i+1])
				} else {
					printWarning(out, "No link between %s and %s", pairs[i], pairs[i+1])
				}
			}

			printComponents(cmd, w)

			if from != "" || to != "" {
				if from == "" || to == "" {
					return swerr.New(swerr.ErrCodeInvalidInput, "--from and --to must be given together")
				}
				return routeOnce(ctx, out, w, from, to)
			}
			return nil
		},
	}

	cmd.ValidArgsFunction = completeNodes
	cmd.Flags().StringVar(&from, "from", "", "route query source after the cut")
	cmd.Flags().StringVar(&to, "to", "", "route query destination after the cut")
	return cmd
}

// printComponents lists component sizes, largest first.
func printComponents(cmd *cobra.Command, w *web.Web) {
	out := cmd.OutOrStdout()
	comps := w.Components()
	sizes := make([]int, len(comps))
	for i, comp := range comps {
		sizes[i] = int(comp.GetCardinality())
	}
	slices.SortFunc(sizes, func(a, b int) int { return cmp.Compare(b, a) })

	printInfo(out, "%s components", StyleNumber.Render(strconv.Itoa(len(sizes))))
	for i, n := range sizes {
		printDetail(out, "#%d: %d nodes", i+1, n)
	}
	if len(sizes) == 2 {
		printKeyValue(out, "product", StyleHighlight.Render(fmt.Sprintf("%d × %d = %d", sizes[0], sizes[1], sizes[0]*sizes[1])))
	}
}
