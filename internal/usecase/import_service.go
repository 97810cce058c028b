package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/id"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
)

const (
	importStatusSuccess = "success"
	importStatusFailed  = "failed"
	importStatusDryRun  = "dry_run"

	defaultImportWorkers = 2
)

// RosterStore persists a full variant roster, replacing what was there.
type RosterStore interface {
	ReplaceVariant(ctx context.Context, v variant.Variant, importID string, records []player.Record) error
}

// SnapshotInvalidator drops cached copies of a variant roster after it was
// replaced.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, v variant.Variant) error
}

type ImportInput struct {
	// VariantIDs limits the import; empty means every catalog variant.
	VariantIDs []string
	DryRun     bool
	Workers    int
	// OnTaskDone is called once per variant from worker goroutines.
	OnTaskDone func(ImportTaskResult)
}

type ImportTaskResult struct {
	VariantID  string
	SourceFile string
	ImportID   string
	Rows       int
	Accepted   int
	Rejected   int
	Status     string
	Message    string
	DurationMs int64
}

type ImportResult struct {
	Tasks        []ImportTaskResult
	SuccessCount int
	FailedCount  int
}

// ImportService copies workbook rosters into the database so the API can
// serve from ROSTER_SOURCE=postgres.
type ImportService struct {
	catalog *variant.Catalog
	source  player.Repository
	store   RosterStore
	ids     id.Generator
	rows    rowChecker
	cache   SnapshotInvalidator
	logger  *logging.Logger
}

func NewImportService(catalog *variant.Catalog, source player.Repository, store RosterStore, ids id.Generator, logger *logging.Logger) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{
		catalog: catalog,
		source:  source,
		store:   store,
		ids:     ids,
		rows:    newRowChecker(),
		logger:  logger,
	}
}

// WithSnapshotInvalidator makes successful imports drop the cached roster so
// readers behind the snapshot cache see the new rows.
func (s *ImportService) WithSnapshotInvalidator(cache SnapshotInvalidator) *ImportService {
	s.cache = cache
	return s
}

func (s *ImportService) Run(ctx context.Context, input ImportInput) (ImportResult, error) {
	ctx, span := startBatchSpan(ctx, "usecase.ImportService.Run", attribute.Bool("import.dry_run", input.DryRun))
	defer span.End()

	variants, err := s.selectVariants(input.VariantIDs)
	if err != nil {
		return ImportResult{}, err
	}
	if !input.DryRun && s.store == nil {
		return ImportResult{}, fmt.Errorf("%w: roster store is required unless dry run", ErrInvalidInput)
	}

	workers := input.Workers
	if workers <= 0 {
		workers = defaultImportWorkers
	}
	workers = min(workers, len(variants))

	pool, err := ants.NewPool(workers)
	if err != nil {
		return ImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan ImportTaskResult, len(variants))
	var failed atomic.Int32
	var wg sync.WaitGroup
	for _, v := range variants {
		v := v
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			row := s.importVariant(ctx, v, input.DryRun)
			if row.Status == importStatusFailed {
				failed.Add(1)
			}
			if input.OnTaskDone != nil {
				input.OnTaskDone(row)
			}
			results <- row
		}); err != nil {
			wg.Done()
			return ImportResult{}, fmt.Errorf("submit import task: %w", err)
		}
	}
	wg.Wait()
	close(results)

	var out ImportResult
	for row := range results {
		out.Tasks = append(out.Tasks, row)
	}
	sort.SliceStable(out.Tasks, func(i, j int) bool {
		return out.Tasks[i].VariantID < out.Tasks[j].VariantID
	})
	out.FailedCount = int(failed.Load())
	out.SuccessCount = len(out.Tasks) - out.FailedCount
	return out, nil
}

func (s *ImportService) selectVariants(ids []string) ([]variant.Variant, error) {
	if len(ids) == 0 {
		return s.catalog.List(), nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]variant.Variant, 0, len(ids))
	for _, raw := range ids {
		variantID := strings.TrimSpace(raw)
		if _, dup := seen[variantID]; dup {
			continue
		}
		seen[variantID] = struct{}{}
		v, err := s.catalog.Get(variantID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *ImportService) importVariant(ctx context.Context, v variant.Variant, dryRun bool) ImportTaskResult {
	start := time.Now()
	row := ImportTaskResult{VariantID: v.ID, SourceFile: v.SourceFile}
	fail := func(err error) ImportTaskResult {
		row.Status = importStatusFailed
		row.Message = err.Error()
		row.DurationMs = time.Since(start).Milliseconds()
		s.logger.ErrorContext(ctx, "roster import failed", "variant", v.ID, "error", err)
		return row
	}

	raw, err := s.source.ListByVariant(ctx, v)
	if err != nil {
		if errors.Is(err, player.ErrSchemaMismatch) {
			return fail(fmt.Errorf("%w: %w", ErrDataQuality, err))
		}
		return fail(fmt.Errorf("%w: %w", ErrDependencyUnavailable, err))
	}
	accepted := s.rows.accept(ctx, v, raw, func(i int, rec player.Record, err error) {
		s.logger.WarnContext(ctx, "import row rejected", "variant", v.ID, "row", i, "player", rec.DisplayLabel(), "error", err)
	})
	row.Rows = len(raw)
	row.Accepted = len(accepted)
	row.Rejected = len(raw) - len(accepted)

	if dryRun {
		row.Status = importStatusDryRun
		row.DurationMs = time.Since(start).Milliseconds()
		return row
	}

	importID, err := s.ids.NewID()
	if err != nil {
		return fail(fmt.Errorf("generate import id: %w", err))
	}
	row.ImportID = importID
	if err := s.store.ReplaceVariant(ctx, v, importID, accepted); err != nil {
		return fail(fmt.Errorf("%w: store roster: %w", ErrDependencyUnavailable, err))
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, v); err != nil {
			s.logger.WarnContext(ctx, "roster snapshot invalidation failed", "variant", v.ID, "error", err)
		}
	}

	row.Status = importStatusSuccess
	row.DurationMs = time.Since(start).Milliseconds()
	s.logger.InfoContext(ctx, "roster imported",
		"variant", v.ID,
		"import_id", importID,
		"accepted", row.Accepted,
		"rejected", row.Rejected,
		"duration_ms", row.DurationMs,
	)
	return row
}
