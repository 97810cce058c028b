package scouting

import (
	"strings"
	"unicode"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
)

// MinutesRange is an inclusive playing-time window.
type MinutesRange struct {
	Min int
	Max int
}

func (m MinutesRange) Contains(minutes int) bool {
	return minutes >= m.Min && minutes <= m.Max
}

func (m MinutesRange) Valid() bool {
	return m.Min >= 0 && m.Min <= m.Max
}

// FilterState is the request-scoped set of filter choices. Zero values of
// Role, Foot and CompetitionKeys do not restrict.
type FilterState struct {
	Minutes         MinutesRange
	Role            variant.Role
	Foot            player.Foot
	CompetitionKeys []string
}

// Apply runs the minutes, role, foot and composite-key predicates in that
// order and returns the surviving records in input order. An empty result is
// valid.
func Apply(records []player.Record, state FilterState) []player.Record {
	var keys map[string]struct{}
	if len(state.CompetitionKeys) > 0 {
		keys = make(map[string]struct{}, len(state.CompetitionKeys))
		for _, k := range state.CompetitionKeys {
			keys[k] = struct{}{}
		}
	}

	out := make([]player.Record, 0, len(records))
	for _, r := range records {
		if !state.Minutes.Contains(r.MinutesPlayed) {
			continue
		}
		if !MatchesRole(r, state.Role) {
			continue
		}
		if !MatchesFoot(r, state.Foot) {
			continue
		}
		if keys != nil {
			if _, ok := keys[r.CompositeKey()]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// MatchesRole reports whether any position token contains one of the role's
// markers. The unrestricted role matches every record.
func MatchesRole(r player.Record, role variant.Role) bool {
	if role.IsAny() {
		return true
	}
	for _, token := range positionTokens(r.Position) {
		for _, marker := range role.Markers {
			if marker != "" && strings.Contains(token, marker) {
				return true
			}
		}
	}
	return false
}

// MatchesFoot keeps the requested foot plus two-footed and unknown players.
func MatchesFoot(r player.Record, foot player.Foot) bool {
	if foot == "" {
		return true
	}
	switch r.Foot {
	case foot, player.FootBoth, player.FootUnknown:
		return true
	}
	return false
}

func positionTokens(position string) []string {
	return strings.FieldsFunc(position, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
