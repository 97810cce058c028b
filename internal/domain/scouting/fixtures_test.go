package scouting

import (
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
)

var testMetricKeys = []string{"Centros", "Defensa"}

func strPtr(s string) *string { return &s }

func rec(name, team, position string, foot player.Foot, minutes int, score float64, metrics map[string]float64) player.Record {
	return player.Record{
		ID:            name + "|" + team,
		Name:          name,
		Team:          team,
		Position:      position,
		Foot:          foot,
		MinutesPlayed: minutes,
		Region:        strPtr("Argentina"),
		Competition:   strPtr("Liga Profesional"),
		Season:        strPtr("2025"),
		Metrics:       metrics,
		OverallScore:  score,
	}
}

func sampleRoster() []player.Record {
	premier := rec("Reece James", "Chelsea", "RB, RWB", player.FootRight, 1800, 7.9, map[string]float64{"Centros": 7.5, "Defensa": 6.8})
	premier.Region = nil
	premier.Competition = strPtr("Premier League")
	premier.Season = strPtr("24/25")

	return []player.Record{
		rec("Gonzalo Montiel", "River Plate", "RB", player.FootRight, 1500, 7.2, map[string]float64{"Centros": 6.1, "Defensa": 7.4}),
		rec("Marcos Acuña", "River Plate", "LB, LWB", player.FootLeft, 900, 6.8, map[string]float64{"Centros": 7.9, "Defensa": 6.0}),
		rec("Agustín Giay", "San Lorenzo", "RWB", player.FootBoth, 400, 6.1, map[string]float64{"Centros": 5.2, "Defensa": 5.9}),
		rec("Nicolás Tagliafico", "Lyon", "LB", player.FootUnknown, 2100, 7.0, map[string]float64{"Centros": 6.4, "Defensa": 7.1}),
		rec("Kevin Mac Allister", "Argentinos Juniors", "CB", player.FootRight, 1200, 6.5, map[string]float64{"Centros": 3.0, "Defensa": 7.8}),
		premier,
	}
}

func names(records []player.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
