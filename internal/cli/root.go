package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the config file is loaded, the log level is
// applied (--verbose wins over log_level), and the logger is attached to the
// command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Spiderweb finds shortest routes through a web of named nodes",
		Long: `Spiderweb loads an undirected web from an adjacency list and answers
shortest-route queries. Every answered query leaves its route on the links it
crossed, so later queries through the same links follow it instead of
flooding the web. Removing a link never requires rebuilding anything.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			if c.verbose {
				c.SetLogLevel(LogDebug)
			} else {
				c.SetLogLevel(c.Config.level())
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/spiderweb/config.toml)")
	root.PersistentFlags().IntVarP(&c.workers, "workers", "w", 0, "spider goroutines per generation (0 = config or GOMAXPROCS)")

	// Register all subcommands
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.cutCommand())
	root.AddCommand(c.dumpCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default file if it exists.
func (c *CLI) loadConfig() error {
	path, required := c.configPath, true
	if path == "" {
		def, err := configFile()
		if err != nil {
			return nil
		}
		path, required = def, false
	}
	cfg, err := loadConfig(path, required)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}
