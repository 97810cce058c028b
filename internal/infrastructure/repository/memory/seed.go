package memory

import (
	"strconv"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/id"
)

const (
	VariantLaterales      = "laterales"
	VariantVolantesMixtos = "volantes-mixtos"
)

type seedRow struct {
	name, team, position string
	foot                 player.Foot
	minutes              int
	region, competition  string
	season               string
	score                float64
	metrics              []float64
}

var lateralesKeys = []string{
	"Gol y Finalización", "Asistencias y creación de chances", "1v1 en ataque",
	"Centros", "Juego asociado", "Juego aéreo", "1v1 en defensa", "Defensa",
}

var volantesKeys = []string{
	"Gol y Finalización", "Asistencias y creación de chances", "1v1 en ataque",
	"Centros", "Juego asociado", "Juego aéreo", "Defensa",
}

// SeedRecords is a small development roster for both variants. It includes
// accented names so accent-insensitive selection can be exercised locally.
func SeedRecords() map[string][]player.Record {
	laterales := []seedRow{
		{"Gonzalo Montiel", "River Plate", "RB", player.FootRight, 1540, "Argentina", "Liga Profesional", "2025", 71.4, []float64{4.1, 6.3, 5.8, 6.9, 7.2, 5.5, 6.8, 7.1}},
		{"Marcos Acuña", "River Plate", "LB, LWB", player.FootLeft, 1320, "Argentina", "Liga Profesional", "2025", 73.9, []float64{3.8, 7.4, 6.1, 8.2, 7.0, 4.9, 6.2, 6.6}},
		{"Agustín Giay", "Palmeiras", "RB, RWB", player.FootRight, 2210, "Brasil", "Serie A", "2024", 69.2, []float64{3.2, 5.9, 6.6, 6.0, 6.8, 5.1, 6.9, 6.7}},
		{"Kevin Mac Allister", "Union SG", "RB, CB", player.FootRight, 980, "Bélgica", "Pro League", "24/25", 64.0, []float64{2.4, 4.2, 3.9, 4.6, 6.1, 7.3, 7.5, 7.8}},
		{"Román Vega", "Argentinos Juniors", "LB", player.FootLeft, 1705, "Argentina", "Liga Profesional", "2025", 70.6, []float64{3.6, 6.1, 5.4, 7.1, 6.9, 6.0, 6.4, 6.9}},
		{"Nicolás Tagliafico", "Lyon", "LB", player.FootLeft, 2405, "Francia", "Ligue 1", "24/25", 72.8, []float64{3.9, 6.5, 5.2, 6.8, 7.5, 6.2, 7.0, 7.3}},
		{"Joaquín García", "Vélez Sarsfield", "RWB", player.FootUnknown, 455, "Argentina", "Liga Profesional", "2025", 58.3, []float64{3.0, 5.0, 6.2, 5.4, 5.9, 4.4, 5.6, 5.8}},
		{"Reece James", "Chelsea", "RB, RWB", player.FootBoth, 1210, "", "Premier League", "24/25", 76.1, []float64{5.1, 7.9, 6.8, 8.0, 7.7, 6.1, 7.2, 7.0}},
	}
	volantes := []seedRow{
		{"Alan Lescano", "Argentinos Juniors", "CM, AM", player.FootLeft, 1890, "Argentina", "Liga Profesional", "2025", 74.5, []float64{6.2, 7.8, 6.5, 5.9, 8.1, 4.2, 5.7}},
		{"Federico Redondo", "Inter Miami", "DM, CM", player.FootRight, 2020, "Estados Unidos", "MLS", "2024", 70.1, []float64{3.9, 6.0, 4.8, 3.6, 8.4, 6.3, 7.6}},
		{"Ezequiel Fernández", "Al Qadsiah", "CM", player.FootRight, 1475, "Arabia Saudita", "Saudi Pro League", "24/25", 71.7, []float64{5.1, 6.4, 5.2, 4.1, 7.6, 5.8, 7.2}},
		{"Equi Fernandez", "Boca Juniors", "CM", player.FootRight, 610, "Argentina", "Liga Profesional", "2025", 60.2, []float64{4.0, 5.1, 4.6, 3.3, 6.7, 5.0, 6.4}},
		{"Rodrigo Villagra", "River Plate", "DM", player.FootUnknown, 1130, "Argentina", "Liga Profesional", "2025", 66.9, []float64{2.8, 4.7, 3.9, 2.9, 7.4, 6.6, 7.9}},
		{"Thiago Almada", "Botafogo", "AM, LW", player.FootBoth, 1745, "Brasil", "Serie A", "2024", 77.3, []float64{7.4, 8.3, 7.9, 6.4, 7.8, 3.1, 4.6}},
	}

	return map[string][]player.Record{
		VariantLaterales:      buildSeed(VariantLaterales, lateralesKeys, laterales),
		VariantVolantesMixtos: buildSeed(VariantVolantesMixtos, volantesKeys, volantes),
	}
}

func buildSeed(variantID string, keys []string, rows []seedRow) []player.Record {
	out := make([]player.Record, 0, len(rows))
	for i, row := range rows {
		metrics := make(map[string]float64, len(keys))
		for k, key := range keys {
			metrics[key] = row.metrics[k]
		}
		out = append(out, player.Record{
			ID:            id.Derive(variantID, strconv.Itoa(i), row.name, row.team, row.season),
			Name:          row.name,
			Team:          row.team,
			Position:      row.position,
			Foot:          row.foot,
			MinutesPlayed: row.minutes,
			Region:        player.StringPtr(row.region),
			Competition:   player.StringPtr(row.competition),
			Season:        player.StringPtr(row.season),
			Metrics:       metrics,
			OverallScore:  row.score,
		})
	}
	return out
}
