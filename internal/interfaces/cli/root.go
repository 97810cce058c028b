// Package cli implements scoutctl, the operator command line for ranking,
// comparing and importing rosters without the HTTP API.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/app"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/config"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	cacherepo "github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/cache"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/memory"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/postgres"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/xlsx"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/observability"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

type rootOptions struct {
	source   string
	dataDir  string
	jsonOut  bool
	logLevel string
}

// env carries what every subcommand needs once flags are parsed.
type env struct {
	opts    *rootOptions
	cfg     config.Config
	logger  *logging.Logger
	catalog *variant.Catalog
	closers []func() error
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	e := &env{opts: opts}

	root := &cobra.Command{
		Use:   "scoutctl",
		Short: "Rank and compare scouting rosters from the command line",
		Long: `scoutctl reads the same roster sources as the API (workbooks, postgres or
the built-in seed), ranks players inside a filtered cohort and compares
metric profiles. The import command loads workbooks into postgres.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&opts.source, "source", "", "Roster source: xlsx, postgres or memory (default from ROSTER_SOURCE)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Workbook directory (default from ROSTER_DATA_DIR)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print JSON instead of tables")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")

	root.AddCommand(
		newVariantsCommand(e),
		newRankCommand(e),
		newCompareCommand(e),
		newImportCommand(e),
	)
	return root
}

func (e *env) init(cmd *cobra.Command) error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if e.opts.source != "" {
		cfg.RosterSource = strings.ToLower(strings.TrimSpace(e.opts.source))
	}
	if e.opts.dataDir != "" {
		cfg.RosterDataDir = e.opts.dataDir
	}
	e.cfg = cfg
	e.logger = logging.NewConsole(logging.ParseLevel(e.opts.logLevel), cmd.ErrOrStderr())

	e.catalog, err = variant.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("load variant catalog: %w", err)
	}

	// Traces and profiles follow the API settings; the pprof listener is
	// for the long-running server only.
	obsCfg := cfg
	obsCfg.PprofEnabled = false
	stack, err := observability.Setup(obsCfg, e.logger)
	if err != nil {
		return err
	}
	e.closers = append(e.closers, func() error { return stack.Shutdown(context.Background()) })
	return nil
}

// run wraps a command body so resources opened by it are released even when
// it fails.
func (e *env) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if cerr := e.close(); err == nil {
			err = cerr
		}
		return err
	}
}

func (e *env) close() error {
	var first error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	e.closers = nil
	if e.logger != nil {
		_ = e.logger.Sync()
	}
	return first
}

// repository builds the configured roster source, behind the Redis snapshot
// when REDIS_ENABLED is set.
func (e *env) repository(ctx context.Context) (player.Repository, error) {
	var repo player.Repository
	switch e.cfg.RosterSource {
	case config.RosterSourceXLSX:
		repo = xlsx.NewPlayerRepository(e.cfg.RosterDataDir, e.logger)
	case config.RosterSourceMemory:
		repo = memory.NewPlayerRepository(memory.SeedRecords())
	case config.RosterSourcePostgres:
		store, err := e.postgres(ctx)
		if err != nil {
			return nil, err
		}
		repo = store
	default:
		return nil, fmt.Errorf("unsupported roster source %q", e.cfg.RosterSource)
	}
	if !e.cfg.RedisEnabled {
		return repo, nil
	}
	return e.snapshotCache(repo), nil
}

func (e *env) snapshotCache(next player.Repository) *cacherepo.PlayerRepository {
	cached, client := app.NewSnapshotCache(e.cfg, next, e.logger)
	e.closers = append(e.closers, client.Close)
	return cached
}

func (e *env) postgres(ctx context.Context) (*postgres.PlayerRepository, error) {
	db, err := app.OpenDB(ctx, e.cfg)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, db.Close)
	return postgres.NewPlayerRepository(db), nil
}

func (e *env) scouting(ctx context.Context) (*usecase.ScoutingService, error) {
	repo, err := e.repository(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewScoutingService(usecase.NewRosterService(e.catalog, repo, e.logger)), nil
}

func (e *env) printJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
