package scouting

import (
	"sort"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
)

// MinutesBounds returns the lowest and highest minutes in records. ok is
// false for an empty population.
func MinutesBounds(records []player.Record) (MinutesRange, bool) {
	if len(records) == 0 {
		return MinutesRange{}, false
	}
	out := MinutesRange{Min: records[0].MinutesPlayed, Max: records[0].MinutesPlayed}
	for _, r := range records[1:] {
		out.Min = min(out.Min, r.MinutesPlayed)
		out.Max = max(out.Max, r.MinutesPlayed)
	}
	return out, true
}

// FootOptions lists the distinct feet present, sorted.
func FootOptions(records []player.Record) []player.Foot {
	seen := make(map[player.Foot]struct{})
	out := make([]player.Foot, 0, 4)
	for _, r := range records {
		if r.Foot == "" {
			continue
		}
		if _, ok := seen[r.Foot]; ok {
			continue
		}
		seen[r.Foot] = struct{}{}
		out = append(out, r.Foot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CompetitionBucket is one composite key with the season it was built from.
type CompetitionBucket struct {
	Key    string
	Season string
	Count  int
}

// CompetitionBuckets lists the distinct composite keys sorted by key.
func CompetitionBuckets(records []player.Record) []CompetitionBucket {
	idx := make(map[string]int)
	out := make([]CompetitionBucket, 0)
	for _, r := range records {
		key := r.CompositeKey()
		if i, ok := idx[key]; ok {
			out[i].Count++
			continue
		}
		idx[key] = len(out)
		out = append(out, CompetitionBucket{Key: key, Season: r.SeasonLabel(), Count: 1})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
