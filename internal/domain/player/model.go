package player

import (
	"errors"
	"fmt"
	"strings"
)

// Foot is the preferred foot recorded for a player.
type Foot string

const (
	FootLeft    Foot = "left"
	FootRight   Foot = "right"
	FootBoth    Foot = "both"
	FootUnknown Foot = "unknown"
)

// ParseFoot maps a source value to a Foot. Empty and unrecognized values
// become FootUnknown.
func ParseFoot(raw string) Foot {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left", "izquierda", "zurdo":
		return FootLeft
	case "right", "derecha", "diestro":
		return FootRight
	case "both", "ambas", "ambidiestro":
		return FootBoth
	default:
		return FootUnknown
	}
}

func (f Foot) Valid() bool {
	switch f {
	case FootLeft, FootRight, FootBoth, FootUnknown:
		return true
	}
	return false
}

var (
	ErrNegativeMinutes = errors.New("minutes played must not be negative")
	ErrMissingName     = errors.New("player name is required")
	// ErrSchemaMismatch marks a source whose layout does not match the
	// variant (missing column, unreadable sheet). Loaders fail fast with it.
	ErrSchemaMismatch = errors.New("roster source does not match variant schema")
)

// Record is one player-team-season row of a variant dataset. Records are
// read-only once loaded; engine operations return new slices.
type Record struct {
	ID            string
	Name          string
	Team          string
	Position      string
	Foot          Foot
	MinutesPlayed int
	Region        *string
	Competition   *string
	Season        *string
	Metrics       map[string]float64
	OverallScore  float64
}

// DisplayLabel is the user-facing "name (team)" label.
func (r Record) DisplayLabel() string {
	return r.Name + " (" + r.Team + ")"
}

func (r Record) CompositeKey() string {
	return BuildCompositeKey(r.Region, r.Competition, r.Season)
}

// SeasonLabel returns the season or "" when absent.
func (r Record) SeasonLabel() string {
	if r.Season == nil {
		return ""
	}
	return *r.Season
}

// Validate checks the row-level invariants against the variant's metric key
// set.
func (r Record) Validate(metricKeys []string) error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if r.MinutesPlayed < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeMinutes, r.MinutesPlayed)
	}
	if !r.Foot.Valid() {
		return fmt.Errorf("invalid foot %q", r.Foot)
	}
	for _, k := range metricKeys {
		if _, ok := r.Metrics[k]; !ok {
			return fmt.Errorf("metric %q is missing", k)
		}
	}
	return nil
}

// BuildCompositeKey joins region, competition and season with " | ". Nil
// parts count as empty and the joined result is whitespace-trimmed, so a
// missing first or last part leaves a bare separator ("| Premier League |").
// Keys compare by exact string; no semantic merging is attempted.
func BuildCompositeKey(region, competition, season *string) string {
	return strings.TrimSpace(deref(region) + " | " + deref(competition) + " | " + deref(season))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for blank input, otherwise a pointer to the trimmed
// value.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
