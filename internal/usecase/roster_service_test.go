package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	playermock "github.com/datosargentinosjuniors/scouting-aaaj/internal/mocks/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRosterService_Records_LoadsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	svc := NewRosterService(mustCatalog(t, scenarioCatalogYAML), repo, logging.NewNop())

	repo.On("ListByVariant", mock.Anything, variantID("defensa")).
		Return(scenarioRoster(), nil).
		Once()

	v, err := svc.Variant("defensa")
	if err != nil {
		t.Fatalf("variant: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := svc.Records(ctx, v)
			if err != nil || len(records) != 3 {
				t.Errorf("Records=%d, %v", len(records), err)
			}
		}()
	}
	wg.Wait()
}

func TestRosterService_Records_RejectsBadRowsOnly(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	repo := playermock.NewRepository(t)
	svc := NewRosterService(mustCatalog(t, scenarioCatalogYAML), repo, logging.FromZap(zap.New(core)))

	roster := scenarioRoster()
	negative := roster[0]
	negative.ID, negative.MinutesPlayed = "neg", -10
	noMetric := roster[1]
	noMetric.ID, noMetric.Metrics = "nometric", map[string]float64{"Centros": 3}
	unnamed := roster[2]
	unnamed.ID, unnamed.Name = "unnamed", ""

	repo.On("ListByVariant", mock.Anything, variantID("defensa")).
		Return(append(roster, negative, noMetric, unnamed), nil).
		Once()

	v, _ := svc.Variant("defensa")
	records, err := svc.Records(context.Background(), v)
	if err != nil {
		t.Fatalf("Records error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 accepted rows, got %d", len(records))
	}

	rejected := logs.FilterMessage("roster row rejected").All()
	if len(rejected) != 3 {
		t.Fatalf("expected 3 rejection diagnostics, got %d", len(rejected))
	}
	if rejected[1].ContextMap()["player"] != "Tomás Díaz (Lanús)" {
		t.Fatalf("unexpected diagnostic fields: %v", rejected[1].ContextMap())
	}
}

func TestRosterService_Records_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{name: "schema mismatch", repoErr: fmt.Errorf("open sheet: %w", player.ErrSchemaMismatch), want: ErrDataQuality},
		{name: "backend down", repoErr: errors.New("dial tcp 127.0.0.1:5432: connection refused"), want: ErrDependencyUnavailable},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := playermock.NewRepository(t)
			svc := NewRosterService(mustCatalog(t, scenarioCatalogYAML), repo, logging.NewNop())
			repo.On("ListByVariant", mock.Anything, variantID("defensa")).Return(nil, tc.repoErr).Once()

			v, _ := svc.Variant("defensa")
			_, err := svc.Records(context.Background(), v)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, tc.repoErr) {
				t.Fatalf("expected cause to be preserved, got %v", err)
			}
		})
	}
}

func TestRosterService_Records_RetriesAfterFailure(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	svc := NewRosterService(mustCatalog(t, scenarioCatalogYAML), repo, logging.NewNop())

	repo.On("ListByVariant", mock.Anything, variantID("defensa")).Return(nil, errors.New("timeout")).Once()
	repo.On("ListByVariant", mock.Anything, variantID("defensa")).Return(scenarioRoster(), nil).Once()

	v, _ := svc.Variant("defensa")
	if _, err := svc.Records(context.Background(), v); err == nil {
		t.Fatalf("expected first load to fail")
	}
	records, err := svc.Records(context.Background(), v)
	if err != nil || len(records) != 3 {
		t.Fatalf("second load = %d, %v", len(records), err)
	}
}

func TestRosterService_Variant_Unknown(t *testing.T) {
	t.Parallel()

	svc := NewRosterService(mustCatalog(t, ""), playermock.NewRepository(t), nil)
	if _, err := svc.Variant("arqueros"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterService_Warmup(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	svc := NewRosterService(mustCatalog(t, ""), repo, logging.NewNop())

	repo.On("ListByVariant", mock.Anything, variantID("laterales")).Return([]player.Record{}, nil).Once()
	repo.On("ListByVariant", mock.Anything, variantID("volantes-mixtos")).Return(nil, errors.New("workbook locked")).Once()

	err := svc.Warmup(context.Background(), 2)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected warmup to surface the failed variant, got %v", err)
	}

	v, _ := svc.Variant("laterales")
	if _, err := svc.Records(context.Background(), v); err != nil {
		t.Fatalf("warm variant must be served from memory: %v", err)
	}
}
