package scouting

import (
	"sort"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
)

type RankedRecord struct {
	Rank   int
	Record player.Record
}

// Rank orders records by OverallScore descending. Ties keep input order and
// ranks are row positions starting at 1, so tied scores get distinct ranks.
func Rank(records []player.Record) []RankedRecord {
	sorted := append([]player.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallScore > sorted[j].OverallScore
	})

	out := make([]RankedRecord, len(sorted))
	for i, r := range sorted {
		out[i] = RankedRecord{Rank: i + 1, Record: r}
	}
	return out
}
