package variant

import (
	"errors"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog error: %v", err)
	}

	variants := c.List()
	if len(variants) != 2 || variants[0].ID != "laterales" || variants[1].ID != "volantes-mixtos" {
		t.Fatalf("unexpected variants: %+v", variants)
	}

	laterales, err := c.Get("laterales")
	if err != nil {
		t.Fatalf("Get laterales: %v", err)
	}
	if len(laterales.MetricKeys) != 8 || laterales.MetricKeys[7] != "Defensa" {
		t.Fatalf("unexpected laterales metrics: %v", laterales.MetricKeys)
	}
	if laterales.Columns.Minutes != "Minutes played" {
		t.Fatalf("shared columns not applied: %+v", laterales.Columns)
	}

	volantes, _ := c.Get("volantes-mixtos")
	if len(volantes.MetricKeys) != 7 || volantes.HasMetric("1v1 en defensa") {
		t.Fatalf("unexpected volantes metrics: %v", volantes.MetricKeys)
	}
	if volantes.RoleOptions() != nil {
		t.Fatalf("volantes has no role selector")
	}

	if _, err := c.Get("arqueros"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestVariant_FindRole(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog error: %v", err)
	}
	v, _ := c.Get("laterales")

	tests := []struct {
		id      string
		ok      bool
		markers []string
	}{
		{id: "", ok: true},
		{id: "any", ok: true},
		{id: "right-back", ok: true, markers: []string{"R"}},
		{id: "left-back", ok: true, markers: []string{"L"}},
		{id: "winger", ok: false},
	}
	for _, tc := range tests {
		role, ok := v.FindRole(tc.id)
		if ok != tc.ok {
			t.Fatalf("FindRole(%q) ok=%v, want %v", tc.id, ok, tc.ok)
		}
		if len(role.Markers) != len(tc.markers) || (len(tc.markers) > 0 && role.Markers[0] != tc.markers[0]) {
			t.Fatalf("FindRole(%q) markers=%v, want %v", tc.id, role.Markers, tc.markers)
		}
	}

	opts := v.RoleOptions()
	if len(opts) != 3 || opts[0].Name != AnyRoleName || !opts[0].IsAny() {
		t.Fatalf("unexpected role options: %+v", opts)
	}
}

func TestCatalog_RecommendedMinMinutes(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog error: %v", err)
	}

	cases := map[string]int{"24/25": 800, "2024": 800, "2025": 500}
	for season, want := range cases {
		got, ok := c.RecommendedMinMinutes(season)
		if !ok || got != want {
			t.Fatalf("RecommendedMinMinutes(%q)=%d,%v want %d", season, got, ok, want)
		}
	}
	if _, ok := c.RecommendedMinMinutes("2019"); ok {
		t.Fatalf("expected no guideline for 2019")
	}
}

func TestParseCatalog_Rejects(t *testing.T) {
	tests := map[string]string{
		"empty":            "variants: []",
		"duplicate id":     "variants:\n  - {id: a, source_file: a.xlsx, score_column: s, metrics: [m]}\n  - {id: a, source_file: b.xlsx, score_column: s, metrics: [m]}",
		"no metrics":       "variants:\n  - {id: a, source_file: a.xlsx, score_column: s}",
		"duplicate metric": "variants:\n  - {id: a, source_file: a.xlsx, score_column: s, metrics: [m, m]}",
		"role no markers":  "variants:\n  - {id: a, source_file: a.xlsx, score_column: s, metrics: [m], roles: [{id: r, name: R}]}",
		"malformed":        "variants: {",
	}
	for name, raw := range tests {
		if _, err := ParseCatalog([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
