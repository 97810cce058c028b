package mcptools

import (
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/scouting"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

// Views are flatter than the HTTP DTOs: an agent reads one metric per line
// instead of correlating parallel arrays.

type variantView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Metrics []string `json:"metrics"`
	Roles   []string `json:"roles,omitempty"`
}

type competitionView struct {
	Key                   string `json:"key"`
	Players               int    `json:"players"`
	RecommendedMinMinutes *int   `json:"recommended_min_minutes,omitempty"`
}

type optionsView struct {
	VariantID    string            `json:"variant_id"`
	MinMinutes   int               `json:"min_minutes"`
	MaxMinutes   int               `json:"max_minutes"`
	Roles        []string          `json:"roles,omitempty"`
	Feet         []string          `json:"feet"`
	Competitions []competitionView `json:"competitions"`
}

type rowView struct {
	Rank         int     `json:"rank"`
	Label        string  `json:"label"`
	Position     string  `json:"position"`
	Foot         string  `json:"foot"`
	Minutes      int     `json:"minutes"`
	Competition  string  `json:"competition"`
	OverallScore float64 `json:"overall_score"`
	Highlighted  bool    `json:"highlighted,omitempty"`
}

// rangeView leaves min and max null when the cohort is empty.
type rangeView struct {
	Metric  string   `json:"metric"`
	Defined bool     `json:"defined"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
}

type searchView struct {
	VariantID string      `json:"variant_id"`
	Total     int         `json:"total"`
	Empty     bool        `json:"empty"`
	Returned  int         `json:"returned"`
	Ranges    []rangeView `json:"ranges"`
	Rows      []rowView   `json:"rows"`
}

type metricView struct {
	Metric string   `json:"metric"`
	Value  float64  `json:"value"`
	Scaled float64  `json:"scaled"`
	Min    *float64 `json:"cohort_min,omitempty"`
	Max    *float64 `json:"cohort_max,omitempty"`
}

type profileView struct {
	Label   string       `json:"label"`
	Caption string       `json:"caption"`
	Rank    int          `json:"rank"`
	Metrics []metricView `json:"metrics"`
}

type compareView struct {
	VariantID  string       `json:"variant_id"`
	Population int          `json:"population"`
	Primary    profileView  `json:"primary"`
	Secondary  *profileView `json:"secondary,omitempty"`
}

func optionsToView(res usecase.OptionsResult) optionsView {
	out := optionsView{
		VariantID:    res.Variant.ID,
		MinMinutes:   res.Minutes.Min,
		MaxMinutes:   res.Minutes.Max,
		Feet:         make([]string, 0, len(res.Feet)),
		Competitions: make([]competitionView, 0, len(res.Competitions)),
	}
	for _, r := range res.Roles {
		out.Roles = append(out.Roles, r.ID)
	}
	for _, f := range res.Feet {
		out.Feet = append(out.Feet, string(f))
	}
	for _, c := range res.Competitions {
		out.Competitions = append(out.Competitions, competitionView{
			Key:                   c.Key,
			Players:               c.Players,
			RecommendedMinMinutes: c.RecommendedMinMinutes,
		})
	}
	return out
}

func searchToView(res usecase.SearchResult) searchView {
	rows := make([]rowView, 0, len(res.Rows))
	for _, row := range res.Rows {
		rows = append(rows, rowView{
			Rank:         row.Rank,
			Label:        row.Label,
			Position:     row.Record.Position,
			Foot:         string(row.Record.Foot),
			Minutes:      row.Record.MinutesPlayed,
			Competition:  row.Record.CompositeKey(),
			OverallScore: row.Record.OverallScore,
			Highlighted:  row.Selected,
		})
	}
	return searchView{
		VariantID: res.Variant.ID,
		Total:     res.Total,
		Empty:     res.Empty,
		Returned:  len(rows),
		Ranges:    rangesToView(res.Ranges),
		Rows:      rows,
	}
}

func rangesToView(ranges []scouting.MetricRange) []rangeView {
	out := make([]rangeView, 0, len(ranges))
	for _, r := range ranges {
		item := rangeView{Metric: r.Metric, Defined: r.Defined}
		if r.Defined {
			lo, hi := r.Min, r.Max
			item.Min, item.Max = &lo, &hi
		}
		out = append(out, item)
	}
	return out
}

func profileToView(p usecase.ProfiledPlayer, metrics []string, ranges []scouting.MetricRange) profileView {
	out := profileView{
		Label:   p.Label,
		Caption: p.Caption,
		Rank:    p.Rank,
		Metrics: make([]metricView, 0, len(metrics)),
	}
	for i, m := range metrics {
		mv := metricView{Metric: m, Value: p.Values[i], Scaled: p.Scaled[i]}
		if i < len(ranges) && ranges[i].Defined {
			lo, hi := ranges[i].Min, ranges[i].Max
			mv.Min, mv.Max = &lo, &hi
		}
		out.Metrics = append(out.Metrics, mv)
	}
	return out
}

func compareToView(res usecase.CompareResult) compareView {
	out := compareView{
		VariantID:  res.Variant.ID,
		Population: res.Population,
		Primary:    profileToView(res.Primary, res.Variant.MetricKeys, res.Ranges),
	}
	if res.Secondary != nil {
		secondary := profileToView(*res.Secondary, res.Variant.MetricKeys, res.Ranges)
		out.Secondary = &secondary
	}
	return out
}
