package scouting

import (
	"fmt"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/textnorm"
)

// Resolver maps accent-insensitive selectable labels back to rows of one
// filtered population. It must be rebuilt whenever the population changes.
type Resolver struct {
	records   []player.Record
	labels    []string
	canonical map[string]string
}

// NewResolver indexes the unique display labels of records in order. When
// two canonical labels normalize to the same text the first one wins.
func NewResolver(records []player.Record) *Resolver {
	r := &Resolver{
		records:   records,
		labels:    make([]string, 0, len(records)),
		canonical: make(map[string]string, len(records)),
	}
	for _, rec := range records {
		label := rec.DisplayLabel()
		key := textnorm.Normalize(label)
		if _, seen := r.canonical[key]; seen {
			continue
		}
		r.canonical[key] = label
		r.labels = append(r.labels, key)
	}
	return r
}

// Labels returns the selectable labels, unique and in population order.
func (r *Resolver) Labels() []string {
	return append([]string(nil), r.labels...)
}

func (r *Resolver) Len() int {
	return len(r.labels)
}

// Canonical returns the original display label for a selection.
func (r *Resolver) Canonical(label string) (string, bool) {
	c, ok := r.canonical[textnorm.Normalize(label)]
	return c, ok
}

// Resolve returns the first record whose display label is the canonical form
// of label. Unknown labels yield ErrNotFound.
func (r *Resolver) Resolve(label string) (player.Record, error) {
	canonical, ok := r.Canonical(label)
	if !ok {
		return player.Record{}, fmt.Errorf("%w: %q", ErrNotFound, label)
	}
	for _, rec := range r.records {
		if rec.DisplayLabel() == canonical {
			return rec, nil
		}
	}
	return player.Record{}, fmt.Errorf("%w: %q", ErrNotFound, label)
}

// Resolve is the one-shot form of NewResolver(records).Resolve(label).
func Resolve(label string, records []player.Record) (player.Record, error) {
	return NewResolver(records).Resolve(label)
}
