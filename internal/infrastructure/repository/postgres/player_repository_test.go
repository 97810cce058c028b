package postgres

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
)

func TestListByVariantQuery(t *testing.T) {
	query, args, err := listByVariantQuery("laterales")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.Contains(query, "FROM scouting_players WHERE variant_id = $1 ORDER BY row_index, id") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "laterales" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertPlayersQuery(t *testing.T) {
	records := []player.Record{
		{ID: "a", Name: "Juan Pérez", Team: "Talleres", Foot: player.FootRight, MinutesPlayed: 400, Season: player.StringPtr("2025"), Metrics: map[string]float64{"Defensa": 5.5}},
		{ID: "b", Name: "Iván Gómez", Team: "Banfield", Foot: player.FootUnknown, MinutesPlayed: 1500},
	}

	query, args, err := insertPlayersQuery("defensa", "imp-1", 500, records)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	cols := len(scoutingPlayerColumns)
	if len(args) != cols*2 {
		t.Fatalf("expected %d args, got %d", cols*2, len(args))
	}
	if !strings.HasPrefix(query, "INSERT INTO scouting_players (public_id, variant_id") {
		t.Fatalf("unexpected query prefix: %s", query)
	}
	if args[3] != 500 || args[cols+3] != 501 {
		t.Fatalf("row index must continue from the offset: %v / %v", args[3], args[cols+3])
	}
	if args[cols-1] != `{"Defensa":5.5}` || args[2*cols-1] != "{}" {
		t.Fatalf("unexpected metrics payloads: %v / %v", args[cols-1], args[2*cols-1])
	}
	if region, ok := args[cols+9].(*string); !ok || region != nil {
		t.Fatalf("absent region must bind as NULL, got %#v", args[cols+9])
	}
}

func TestRecordFromRow(t *testing.T) {
	rec, err := recordFromRow(scoutingPlayerTableModel{
		PublicID:      "a",
		Name:          "Tomás Díaz",
		Team:          "Lanús",
		Foot:          "izquierda",
		MinutesPlayed: 900,
		Competition:   sql.NullString{String: "Liga Profesional", Valid: true},
		Metrics:       `{"Defensa": 6}`,
		OverallScore:  70,
	})
	if err != nil {
		t.Fatalf("recordFromRow: %v", err)
	}
	if rec.Foot != player.FootLeft || rec.Metrics["Defensa"] != 6 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.CompositeKey() != "| Liga Profesional |" {
		t.Fatalf("unexpected composite key %q", rec.CompositeKey())
	}

	if _, err := recordFromRow(scoutingPlayerTableModel{Metrics: "["}); err == nil {
		t.Fatalf("expected metrics decode error")
	}
}
