package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spiderweb/pkg/cache"
	"github.com/matzehuels/spiderweb/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Expose the web over HTTP",
		Long: `Load the web in FILE and serve it over HTTP until interrupted.

  GET    /route?from=A&to=B
  PUT    /edges/{a}/{b}
  DELETE /edges/{a}/{b}
  GET    /dump?format=svg&detailed=true
  GET    /stats

Rendered images are cached in Redis when --redis is set, otherwise in the
local cache directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			if !cmd.Flags().Changed("redis") {
				redisURL = c.Config.Serve.RedisURL
			}

			w, err := c.loadWeb(args[0])
			if err != nil {
				return err
			}

			var store cache.Cache
			switch {
			case noCache:
				store = cache.NewNullCache()
			case redisURL != "":
				store, err = cache.NewRedisCache(cmd.Context(), redisURL)
			default:
				store, err = newCache(false)
			}
			if err != nil {
				return err
			}
			defer store.Close()

			keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":"+filepath.Base(args[0])+":")
			srv := server.New(w, server.WithCache(store, keyer), server.WithLogger(c.Logger))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
