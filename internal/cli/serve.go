package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/internal/config"
	"github.com/matzehuels/canopy/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	configPath string // config file path, empty for the default location
	addr       string // listen address override
	noCache    bool   // disable the diagram cache
}

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph rendering API over HTTP",
		Long: `Serve starts the canopy HTTP service.

The service stores named graph documents and renders them as mermaid
flowchart text. Storage and cache backends are selected in the config
file: graphs live in memory or MongoDB, rendered diagrams are cached
on disk or in Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the diagram cache")

	return cmd
}

// runServe builds the configured backends and runs the HTTP server
// until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	store, err := c.newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			c.Logger.Warn("store close failed", "err", err)
		}
	}()

	diagrams, err := newDiagramCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer diagrams.Close()

	s := server.New(store, diagrams, cfg.Cache.TTL.Duration, cfg.Render.Flags, c.Logger)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newStore builds the graph store selected by cfg. An empty mongo URI
// selects the in-memory store.
func (c *CLI) newStore(ctx context.Context, cfg config.Config) (server.Store, error) {
	if cfg.Mongo.URI == "" {
		c.Logger.Debug("Using in-memory graph store")
		return server.NewMemoryStore(), nil
	}
	c.Logger.Debugf("Connecting to MongoDB database %q", cfg.Mongo.Database)
	return server.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
}
