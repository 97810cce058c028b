package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/scouting"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/cache"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// rowRules carries the struct-level checks applied to every loaded row.
type rowRules struct {
	Name          string `validate:"required"`
	Team          string `validate:"required"`
	Foot          string `validate:"oneof=left right both unknown"`
	MinutesPlayed int    `validate:"gte=0"`
}

// RosterService owns the process-wide, load-once view of every variant's
// roster. Loaded slices are shared between requests and never mutated.
type RosterService struct {
	catalog *variant.Catalog
	repo    player.Repository
	memo    *cache.Memo[[]player.Record]
	rows    rowChecker
	logger  *logging.Logger
}

func NewRosterService(catalog *variant.Catalog, repo player.Repository, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		catalog: catalog,
		repo:    repo,
		memo:    cache.NewMemo[[]player.Record](),
		rows:    newRowChecker(),
		logger:  logger,
	}
}

func (s *RosterService) Catalog() *variant.Catalog {
	return s.catalog
}

// Variant resolves a variant id; unknown ids are ErrNotFound.
func (s *RosterService) Variant(variantID string) (variant.Variant, error) {
	v, err := s.catalog.Get(variantID)
	if err != nil {
		return variant.Variant{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return v, nil
}

// Records returns the validated roster of v, loading it on first use.
func (s *RosterService) Records(ctx context.Context, v variant.Variant) ([]player.Record, error) {
	return s.memo.GetOrLoad(ctx, v.ID, func(ctx context.Context) ([]player.Record, error) {
		return s.load(ctx, v)
	})
}

func (s *RosterService) load(ctx context.Context, v variant.Variant) ([]player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.load", attribute.String("variant.id", v.ID))
	defer span.End()

	start := time.Now()
	raw, err := s.repo.ListByVariant(ctx, v)
	if err != nil {
		if errors.Is(err, player.ErrSchemaMismatch) {
			return nil, fmt.Errorf("%w: load roster %s: %w", ErrDataQuality, v.ID, err)
		}
		return nil, fmt.Errorf("%w: load roster %s: %w", ErrDependencyUnavailable, v.ID, err)
	}

	accepted := s.rows.accept(ctx, v, raw, func(i int, rec player.Record, err error) {
		s.logger.WarnContext(ctx, "roster row rejected",
			"variant", v.ID,
			"row", i,
			"player", rec.DisplayLabel(),
			"error", err,
		)
	})

	s.logger.InfoContext(ctx, "roster loaded",
		"variant", v.ID,
		"rows", len(raw),
		"accepted", len(accepted),
		"rejected", len(raw)-len(accepted),
		"duration", time.Since(start),
	)
	return accepted, nil
}

// rowChecker holds the acceptance rules every served or imported row must
// pass.
type rowChecker struct {
	validate *validator.Validate
}

func newRowChecker() rowChecker {
	return rowChecker{validate: validator.New()}
}

func (c rowChecker) check(ctx context.Context, v variant.Variant, rec player.Record) error {
	rules := rowRules{
		Name:          rec.Name,
		Team:          rec.Team,
		Foot:          string(rec.Foot),
		MinutesPlayed: rec.MinutesPlayed,
	}
	if err := c.validate.StructCtx(ctx, rules); err != nil {
		return err
	}
	if _, err := scouting.ExtractProfile(rec, v.MetricKeys); err != nil {
		return err
	}
	return nil
}

// accept keeps the rows of raw that pass check, in order, and reports each
// dropped row to reject.
func (c rowChecker) accept(ctx context.Context, v variant.Variant, raw []player.Record, reject func(i int, rec player.Record, err error)) []player.Record {
	out := make([]player.Record, 0, len(raw))
	for i, rec := range raw {
		if err := c.check(ctx, v, rec); err != nil {
			if reject != nil {
				reject(i, rec, err)
			}
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Warmup loads every catalog variant concurrently. Failures are logged and
// joined; the service stays usable and retries lazily per request.
func (s *RosterService) Warmup(ctx context.Context, maxConcurrency int) error {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	p := pool.New().WithContext(ctx).WithMaxGoroutines(maxConcurrency)
	for _, v := range s.catalog.List() {
		v := v
		p.Go(func(ctx context.Context) error {
			records, err := s.Records(ctx, v)
			if err != nil {
				s.logger.ErrorContext(ctx, "roster warmup failed", "variant", v.ID, "error", err)
				return err
			}
			s.logger.DebugContext(ctx, "roster warm", "variant", v.ID, "players", len(records))
			return nil
		})
	}
	return p.Wait()
}
