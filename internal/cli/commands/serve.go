package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/archquery/archquery/internal/cache"
	"github.com/archquery/archquery/internal/compiler/tables"
	"github.com/archquery/archquery/internal/config"
	"github.com/archquery/archquery/internal/debugserver"
	"github.com/archquery/archquery/internal/logging"
	"github.com/archquery/archquery/internal/store"
	"github.com/archquery/archquery/pkg/archquery"
)

// NewServeCommand builds `archquery serve`: starts the debug HTTP
// surface, wiring the configured store backend, the optional Redis
// cache, and a development logger.
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local debug HTTP server",
		Long:  "Start a local HTTP server exposing POST /v1/parse and the stored-query endpoints under /v1/queries, for testing the compiler without the real chat platform.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (0 = use the configured default)")
	return cmd
}

func runServe(portOverride int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.MustDevelopment()
	defer logger.Sync()

	ctx := context.Background()
	st, err := openConfiguredStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	compilerOpts := []archquery.Option{
		archquery.WithMaxInputLength(cfg.Compiler.MaxInputBytes),
	}
	if cfg.Compiler.DebugModeByDefault {
		compilerOpts = append(compilerOpts, archquery.WithDebug())
	}
	if spec, ok := tables.SortCodes[cfg.Compiler.DefaultSortCode]; ok {
		compilerOpts = append(compilerOpts, archquery.WithDefaultSort(spec.Criterion, spec.Direction))
	}
	compiler := archquery.New(compilerOpts...)

	resultCache, err := openConfiguredCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if closer, ok := resultCache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	port := cfg.Server.Port
	if portOverride != 0 {
		port = portOverride
	}

	srv := debugserver.New(compiler, st, resultCache, logger)
	addr := fmt.Sprintf(":%d", port)

	color.New(color.FgCyan, color.Bold).Printf("archquery debug server listening on %s\n", addr)
	return http.ListenAndServe(addr, srv)
}

func openConfiguredStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "postgres":
		return store.OpenPostgres(ctx, cfg.DSN)
	case "sqlite", "":
		return store.OpenSQLite(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// openConfiguredCache dials Redis when the cache is enabled, returning a
// nil Cache (not an error) when it isn't: handleParse treats a nil Cache
// as "always miss, never store". The nil is returned as the bare
// interface value, not a typed *RedisCache, so the nil check on the
// Server side behaves correctly.
func openConfiguredCache(cfg config.CacheConfig) (cache.Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	opts := cache.DefaultRedisOptions()
	opts.Addr = cfg.Address
	opts.Config.TTL = time.Duration(cfg.TTLSecs) * time.Second
	return cache.NewRedisCache(opts)
}
