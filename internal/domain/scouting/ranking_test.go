package scouting

import (
	"testing"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
)

func TestRank(t *testing.T) {
	roster := sampleRoster()

	ranked := Rank(roster)
	wantOrder := []string{"Reece James", "Gonzalo Montiel", "Nicolás Tagliafico", "Marcos Acuña", "Kevin Mac Allister", "Agustín Giay"}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("expected %d rows, got %d", len(wantOrder), len(ranked))
	}
	for i, row := range ranked {
		if row.Rank != i+1 {
			t.Fatalf("row %d has rank %d", i, row.Rank)
		}
		if row.Record.Name != wantOrder[i] {
			t.Fatalf("row %d = %s, want %s", i, row.Record.Name, wantOrder[i])
		}
	}
	if roster[0].Name != "Gonzalo Montiel" {
		t.Fatalf("Rank must not reorder its input")
	}
}

func TestRank_StableTies(t *testing.T) {
	a := player.Record{ID: "a", OverallScore: 7}
	b := player.Record{ID: "b", OverallScore: 7}
	c := player.Record{ID: "c", OverallScore: 9}

	ranked := Rank([]player.Record{a, b, c})
	got := []string{ranked[0].Record.ID, ranked[1].Record.ID, ranked[2].Record.ID}
	if !equalStrings(got, []string{"c", "a", "b"}) {
		t.Fatalf("unexpected tie order: %v", got)
	}
	if ranked[1].Rank != 2 || ranked[2].Rank != 3 {
		t.Fatalf("tied rows must get consecutive distinct ranks: %+v", ranked)
	}
}

func TestRank_Empty(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Fatalf("expected empty ranking, got %v", got)
	}
}
