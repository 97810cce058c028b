package cli

import (
	"fmt"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/memory"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/xlsx"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/id"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

func newImportCommand(e *env) *cobra.Command {
	var (
		dryRun  bool
		seed    bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "import [variant...]",
		Short: "Load variant workbooks into postgres",
		Long: `import parses the workbook of every named variant (all when none are given)
from --data-dir, drops rows that fail validation and replaces the stored
roster of that variant in one transaction. --dry-run only parses.`,
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var source player.Repository = xlsx.NewPlayerRepository(e.cfg.RosterDataDir, e.logger)
			if seed {
				source = memory.NewPlayerRepository(memory.SeedRecords())
			}

			var (
				store usecase.RosterStore
				cache usecase.SnapshotInvalidator
			)
			if !dryRun {
				pg, err := e.postgres(ctx)
				if err != nil {
					return err
				}
				store = pg
				if e.cfg.RedisEnabled {
					cache = e.snapshotCache(pg)
				}
			}

			total := len(args)
			if total == 0 {
				total = len(e.catalog.List())
			}
			var bar *progressbar.ProgressBar
			if !e.opts.jsonOut {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("Importing rosters"),
					progressbar.OptionShowCount(),
					progressbar.OptionSetItsString("variants"),
					progressbar.OptionShowElapsedTimeOnFinish(),
					progressbar.OptionClearOnFinish(),
				)
			}

			svc := usecase.NewImportService(e.catalog, source, store, id.NewRandomGenerator(), e.logger)
			if cache != nil {
				svc.WithSnapshotInvalidator(cache)
			}
			res, err := svc.Run(ctx, usecase.ImportInput{
				VariantIDs: args,
				DryRun:     dryRun,
				Workers:    workers,
				OnTaskDone: func(usecase.ImportTaskResult) {
					if bar != nil {
						_ = bar.Add(1)
					}
				},
			})
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			if e.opts.jsonOut {
				if err := e.printJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(res.Tasks))
				for _, task := range res.Tasks {
					rows = append(rows, []string{
						task.VariantID,
						task.Status,
						strconv.Itoa(task.Rows),
						strconv.Itoa(task.Accepted),
						strconv.Itoa(task.Rejected),
						strconv.FormatInt(task.DurationMs, 10) + "ms",
						task.Message,
					})
				}
				if _, err := cmd.OutOrStdout().Write([]byte(renderTable(
					[]string{"VARIANT", "STATUS", "ROWS", "ACCEPTED", "REJECTED", "TOOK", "MESSAGE"}, rows,
				))); err != nil {
					return err
				}
			}
			if res.FailedCount > 0 {
				return fmt.Errorf("%d of %d variant imports failed", res.FailedCount, len(res.Tasks))
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and validate without writing to postgres")
	cmd.Flags().BoolVar(&seed, "seed", false, "Import the built-in development roster instead of workbooks")
	cmd.Flags().IntVar(&workers, "workers", 2, "Workbooks parsed in parallel")
	return cmd
}
