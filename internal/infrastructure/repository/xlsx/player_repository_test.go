package xlsx

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
)

func defensaVariant(t *testing.T) variant.Variant {
	t.Helper()
	catalog, err := variant.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	base, err := catalog.Get("laterales")
	if err != nil {
		t.Fatalf("laterales: %v", err)
	}
	return variant.Variant{
		ID:          "defensa",
		Name:        "Defensa",
		SourceFile:  "defensa.xlsx",
		ScoreColumn: "Puntaje AAAJ",
		MetricKeys:  []string{"Defensa", "Juego aéreo"},
		Columns:     base.Columns,
	}
}

var defensaHeader = []any{
	"Player", "Team within selected timeframe", "Position", "Foot", "Minutes played",
	"Pais competencia", "Competencia", "Año", "Puntaje AAAJ", "Defensa", "Juego aéreo",
}

func writeWorkbook(t *testing.T, dir, name string, rows ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestPlayerRepository_ListByVariant(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "defensa.xlsx",
		defensaHeader,
		[]any{"Juan Pérez", "Talleres", "RB, RWB", "right", 400, "Argentina", "Liga Profesional", "2025", 61.5, 5.5, 6},
		[]any{"Tomás Díaz", "Lanús", "LB", "izquierda", 900.0, "Argentina", "Liga Profesional", "2025", 70, 6, 5.25},
		[]any{},
		[]any{"Sin Minutos", "Banfield", "CB", "", "n/a", "Argentina", "Liga Profesional", "2025", 50, 7, 7},
		[]any{"Iván Gómez", "Banfield", "RB", "", 1500, "", "Premier League", "", 80, 8},
	)

	repo := NewPlayerRepository(dir, logging.NewNop())
	v := defensaVariant(t)
	records, err := repo.ListByVariant(context.Background(), v)
	if err != nil {
		t.Fatalf("ListByVariant error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records (blank and unparseable rows skipped), got %d", len(records))
	}

	juan := records[0]
	if juan.DisplayLabel() != "Juan Pérez (Talleres)" || juan.MinutesPlayed != 400 || juan.Foot != player.FootRight {
		t.Fatalf("unexpected first record: %+v", juan)
	}
	if juan.Metrics["Defensa"] != 5.5 || juan.Metrics["Juego aéreo"] != 6 || juan.OverallScore != 61.5 {
		t.Fatalf("unexpected metrics: %+v score=%v", juan.Metrics, juan.OverallScore)
	}
	if juan.CompositeKey() != "Argentina | Liga Profesional | 2025" {
		t.Fatalf("unexpected composite key %q", juan.CompositeKey())
	}
	if records[1].Foot != player.FootLeft {
		t.Fatalf("spanish foot value should parse, got %q", records[1].Foot)
	}

	ivan := records[2]
	if ivan.Foot != player.FootUnknown || ivan.Region != nil || ivan.Season != nil {
		t.Fatalf("blank cells should map to unknown/nil: %+v", ivan)
	}
	if _, ok := ivan.Metrics["Juego aéreo"]; ok {
		t.Fatalf("blank metric cell must stay absent")
	}
	if ivan.CompositeKey() != "| Premier League |" {
		t.Fatalf("unexpected composite key %q", ivan.CompositeKey())
	}

	again, err := repo.ListByVariant(context.Background(), v)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	for i := range records {
		if records[i].ID != again[i].ID {
			t.Fatalf("ids must be stable across reloads")
		}
	}
}

func TestPlayerRepository_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	header := append([]any(nil), defensaHeader[:len(defensaHeader)-1]...)
	writeWorkbook(t, dir, "defensa.xlsx", header)

	_, err := NewPlayerRepository(dir, logging.NewNop()).ListByVariant(context.Background(), defensaVariant(t))
	if !errors.Is(err, player.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), `"Juego aéreo"`) {
		t.Fatalf("error should name the missing column: %v", err)
	}
}

func TestPlayerRepository_MissingFile(t *testing.T) {
	_, err := NewPlayerRepository(t.TempDir(), logging.NewNop()).ListByVariant(context.Background(), defensaVariant(t))
	if err == nil {
		t.Fatalf("expected error for missing workbook")
	}
	if errors.Is(err, player.ErrSchemaMismatch) {
		t.Fatalf("missing file is an availability problem, not a schema mismatch: %v", err)
	}
}

func TestPlayerRepository_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "defensa.xlsx",
		defensaHeader,
		[]any{"Juan Pérez", "Talleres", "RB", "right", 400, "Argentina", "Liga Profesional", "2025", 61.5, 5.5, 6},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPlayerRepository(dir, logging.NewNop()).ListByVariant(ctx, defensaVariant(t))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
