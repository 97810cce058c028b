package usecase

import (
	"testing"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/stretchr/testify/mock"
)

const scenarioCatalogYAML = `
minutes_guidelines:
  - seasons: ["24/25", "2024"]
    min_minutes: 800
  - seasons: ["2025"]
    min_minutes: 500
variants:
  - id: defensa
    name: Defensa
    source_file: defensa.xlsx
    score_column: Puntaje AAAJ
    metrics: [Defensa]
    roles:
      - id: right-back
        name: Lateral derecho
        markers: [R]
`

func mustCatalog(t *testing.T, raw string) *variant.Catalog {
	t.Helper()
	if raw == "" {
		c, err := variant.DefaultCatalog()
		if err != nil {
			t.Fatalf("default catalog: %v", err)
		}
		return c
	}
	c, err := variant.ParseCatalog([]byte(raw))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	return c
}

func variantID(id string) any {
	return mock.MatchedBy(func(v variant.Variant) bool { return v.ID == id })
}

func season(s string) *string { return &s }

func scenarioRecord(id, name, team, position string, foot player.Foot, minutes int, score, defensa float64, seasonLabel string) player.Record {
	return player.Record{
		ID:            id,
		Name:          name,
		Team:          team,
		Position:      position,
		Foot:          foot,
		MinutesPlayed: minutes,
		Region:        season("Argentina"),
		Competition:   season("Liga Profesional"),
		Season:        season(seasonLabel),
		Metrics:       map[string]float64{"Defensa": defensa},
		OverallScore:  score,
	}
}

// scenarioRoster is three players with 400, 900 and 1500 minutes.
func scenarioRoster() []player.Record {
	return []player.Record{
		scenarioRecord("p1", "Juan Pérez", "Talleres", "LB", player.FootLeft, 400, 8.9, 9.5, "2025"),
		scenarioRecord("p2", "Tomás Díaz", "Lanús", "RB", player.FootRight, 900, 6.5, 6.0, "2025"),
		scenarioRecord("p3", "Iván Gómez", "Banfield", "RWB, RB", player.FootBoth, 1500, 7.5, 8.0, "2024"),
	}
}

func intPtr(v int) *int { return &v }

func strRef(v string) *string { return &v }
