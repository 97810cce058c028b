package scouting

import (
	"testing"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
)

func TestFilterRangeExtractRank(t *testing.T) {
	keys := []string{"Defensa"}
	roster := []player.Record{
		{ID: "p1", Name: "Uno", Team: "A", Foot: player.FootRight, MinutesPlayed: 400, OverallScore: 9.0, Metrics: map[string]float64{"Defensa": 9.5}},
		{ID: "p2", Name: "Dos", Team: "B", Foot: player.FootLeft, MinutesPlayed: 900, OverallScore: 6.5, Metrics: map[string]float64{"Defensa": 6.0}},
		{ID: "p3", Name: "Tres", Team: "C", Foot: player.FootBoth, MinutesPlayed: 1500, OverallScore: 7.5, Metrics: map[string]float64{"Defensa": 8.0}},
	}

	filtered := Apply(roster, FilterState{Minutes: MinutesRange{Min: 500, Max: 2000}})
	if !equalStrings(names(filtered), []string{"Dos", "Tres"}) {
		t.Fatalf("unexpected filtered population: %v", names(filtered))
	}

	resolver := NewResolver(filtered)
	first, err := resolver.Resolve("Dos (B)")
	if err != nil {
		t.Fatalf("resolve first: %v", err)
	}
	second, err := resolver.Resolve("Tres (C)")
	if err != nil {
		t.Fatalf("resolve second: %v", err)
	}
	p1, _ := ExtractProfile(first, keys)
	p2, _ := ExtractProfile(second, keys)
	if p1[0] != 6.0 || p2[0] != 8.0 {
		t.Fatalf("unexpected profiles: %v %v", p1, p2)
	}

	ranges, err := ComputeRanges(filtered, keys)
	if err != nil {
		t.Fatalf("ComputeRanges error: %v", err)
	}
	if !ranges[0].Defined || ranges[0].Min != 6.0 || ranges[0].Max != 8.0 {
		t.Fatalf("unexpected range: %+v", ranges[0])
	}

	ranked := Rank(filtered)
	if len(ranked) != 2 || ranked[0].Rank != 1 || ranked[1].Rank != 2 {
		t.Fatalf("unexpected ranks: %+v", ranked)
	}
	if ranked[0].Record.Name != "Tres" || ranked[1].Record.Name != "Dos" {
		t.Fatalf("ranking must follow score descending: %s, %s", ranked[0].Record.Name, ranked[1].Record.Name)
	}
}
