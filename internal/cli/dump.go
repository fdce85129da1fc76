package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/render"
)

// dumpCommand creates the dump command.
func (c *CLI) dumpCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Export the topology as text, JSON, DOT, SVG or PNG",
		Long: `Export the web in FILE.

Formats:
  text  adjacency list, every link once
  json  nodes and links with traffic counts
  dot   Graphviz source
  svg   rendered diagram (cached)
  png   rendered diagram (cached, requires -o)

--detailed labels nodes "name/id" and links with their cached route counts.`,
		Example: `  spiderweb dump input.txt
  spiderweb dump input.txt --format svg -o web.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = c.Config.Render.Format
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			if f.Binary() && output == "" {
				return swerr.New(swerr.ErrCodeInvalidInput, "%s output needs -o FILE", f)
			}

			w, err := c.loadWeb(args[0])
			if err != nil {
				return err
			}
			cache, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer cache.Close()

			var spinner *Spinner
			if f == render.FormatSVG || f == render.FormatPNG {
				spinner = newSpinnerWithContext(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", f))
				spinner.Start()
			}
			data, err := render.Artifact(cmd.Context(), w, render.Options{Format: f, Detailed: detailed}, cache, nil)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess(cmd.OutOrStdout(), "Wrote %s", f)
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatText), "output format: text, json, dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with ids and links with traffic")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not read or write the artifact cache")
	return cmd
}
