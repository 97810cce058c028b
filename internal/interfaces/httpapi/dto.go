package httpapi

import (
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/scouting"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

type filterRequest struct {
	MinMinutes      *int     `json:"min_minutes" validate:"omitempty,gte=0"`
	MaxMinutes      *int     `json:"max_minutes" validate:"omitempty,gte=0"`
	Role            string   `json:"role" validate:"omitempty,max=64"`
	Foot            string   `json:"foot" validate:"omitempty,oneof=any left right both unknown"`
	CompetitionKeys []string `json:"competition_keys" validate:"omitempty,max=200,dive,max=300"`
}

func (f filterRequest) toInput() usecase.FilterInput {
	return usecase.FilterInput{
		MinMinutes:      f.MinMinutes,
		MaxMinutes:      f.MaxMinutes,
		RoleID:          f.Role,
		Foot:            f.Foot,
		CompetitionKeys: f.CompetitionKeys,
	}
}

type searchRequest struct {
	Filter    filterRequest `json:"filter"`
	Highlight []string      `json:"highlight" validate:"omitempty,max=2,dive,required,max=300"`
	Limit     int           `json:"limit" validate:"gte=0,lte=5000"`
}

type compareRequest struct {
	Filter    filterRequest `json:"filter"`
	Primary   string        `json:"primary" validate:"required,max=300"`
	Secondary *string       `json:"secondary" validate:"omitempty,max=300"`
}

type roleDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Markers []string `json:"markers,omitempty"`
}

type variantDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourceFile  string    `json:"source_file"`
	ScoreColumn string    `json:"score_column"`
	Metrics     []string  `json:"metrics"`
	Roles       []roleDTO `json:"roles,omitempty"`
}

type minutesDTO struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type competitionOptionDTO struct {
	Key                   string `json:"key"`
	Season                string `json:"season,omitempty"`
	Players               int    `json:"players"`
	RecommendedMinMinutes *int   `json:"recommended_min_minutes,omitempty"`
}

type optionsDTO struct {
	VariantID    string                 `json:"variant_id"`
	Minutes      minutesDTO             `json:"minutes"`
	Roles        []roleDTO              `json:"roles"`
	Feet         []string               `json:"feet"`
	Competitions []competitionOptionDTO `json:"competitions"`
}

type filterStateDTO struct {
	MinMinutes      int      `json:"min_minutes"`
	MaxMinutes      int      `json:"max_minutes"`
	Role            string   `json:"role"`
	Foot            string   `json:"foot"`
	CompetitionKeys []string `json:"competition_keys"`
}

type metricRangeDTO struct {
	Metric  string   `json:"metric"`
	Defined bool     `json:"defined"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
}

type playerDTO struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Team          string             `json:"team"`
	Position      string             `json:"position"`
	Foot          string             `json:"foot"`
	MinutesPlayed int                `json:"minutes_played"`
	Region        *string            `json:"region"`
	Competition   *string            `json:"competition"`
	Season        *string            `json:"season"`
	CompositeKey  string             `json:"composite_key"`
	OverallScore  float64            `json:"overall_score"`
	Metrics       map[string]float64 `json:"metrics"`
}

type rankingRowDTO struct {
	Rank     int       `json:"rank"`
	Label    string    `json:"label"`
	Selected bool      `json:"selected"`
	Values   []float64 `json:"values"`
	Player   playerDTO `json:"player"`
}

type searchResponseDTO struct {
	VariantID string           `json:"variant_id"`
	Metrics   []string         `json:"metrics"`
	Filter    filterStateDTO   `json:"filter"`
	Total     int              `json:"total"`
	Empty     bool             `json:"empty"`
	Labels    []string         `json:"labels"`
	Ranges    []metricRangeDTO `json:"ranges"`
	Rows      []rankingRowDTO  `json:"rows"`
	Selected  []rankingRowDTO  `json:"selected"`
}

type profileDTO struct {
	Label   string    `json:"label"`
	Caption string    `json:"caption"`
	Rank    int       `json:"rank"`
	Values  []float64 `json:"values"`
	Scaled  []float64 `json:"scaled"`
	Player  playerDTO `json:"player"`
}

type compareResponseDTO struct {
	VariantID        string           `json:"variant_id"`
	Metrics          []string         `json:"metrics"`
	Filter           filterStateDTO   `json:"filter"`
	Population       int              `json:"population"`
	Ranges           []metricRangeDTO `json:"ranges"`
	Primary          profileDTO       `json:"primary"`
	Secondary        *profileDTO      `json:"secondary"`
	SecondaryOptions []string         `json:"secondary_options"`
	Selected         []rankingRowDTO  `json:"selected"`
}

func rolesToDTO(roles []variant.Role) []roleDTO {
	out := make([]roleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleDTO{ID: r.ID, Name: r.Name, Markers: r.Markers})
	}
	return out
}

func variantToDTO(v variant.Variant) variantDTO {
	return variantDTO{
		ID:          v.ID,
		Name:        v.Name,
		SourceFile:  v.SourceFile,
		ScoreColumn: v.ScoreColumn,
		Metrics:     v.MetricKeys,
		Roles:       rolesToDTO(v.RoleOptions()),
	}
}

func optionsToDTO(res usecase.OptionsResult) optionsDTO {
	feet := make([]string, 0, len(res.Feet))
	for _, f := range res.Feet {
		feet = append(feet, string(f))
	}
	competitions := make([]competitionOptionDTO, 0, len(res.Competitions))
	for _, c := range res.Competitions {
		competitions = append(competitions, competitionOptionDTO{
			Key:                   c.Key,
			Season:                c.Season,
			Players:               c.Players,
			RecommendedMinMinutes: c.RecommendedMinMinutes,
		})
	}
	return optionsDTO{
		VariantID:    res.Variant.ID,
		Minutes:      minutesDTO{Min: res.Minutes.Min, Max: res.Minutes.Max},
		Roles:        rolesToDTO(res.Roles),
		Feet:         feet,
		Competitions: competitions,
	}
}

func filterStateToDTO(state scouting.FilterState) filterStateDTO {
	role := state.Role.ID
	if state.Role.IsAny() {
		role = "any"
	}
	foot := string(state.Foot)
	if foot == "" {
		foot = "any"
	}
	keys := state.CompetitionKeys
	if keys == nil {
		keys = []string{}
	}
	return filterStateDTO{
		MinMinutes:      state.Minutes.Min,
		MaxMinutes:      state.Minutes.Max,
		Role:            role,
		Foot:            foot,
		CompetitionKeys: keys,
	}
}

func rangesToDTO(ranges []scouting.MetricRange) []metricRangeDTO {
	out := make([]metricRangeDTO, 0, len(ranges))
	for _, r := range ranges {
		item := metricRangeDTO{Metric: r.Metric, Defined: r.Defined}
		if r.Defined {
			lo, hi := r.Min, r.Max
			item.Min, item.Max = &lo, &hi
		}
		out = append(out, item)
	}
	return out
}

func playerToDTO(rec player.Record) playerDTO {
	return playerDTO{
		ID:            rec.ID,
		Name:          rec.Name,
		Team:          rec.Team,
		Position:      rec.Position,
		Foot:          string(rec.Foot),
		MinutesPlayed: rec.MinutesPlayed,
		Region:        rec.Region,
		Competition:   rec.Competition,
		Season:        rec.Season,
		CompositeKey:  rec.CompositeKey(),
		OverallScore:  rec.OverallScore,
		Metrics:       rec.Metrics,
	}
}

func rowsToDTO(rows []usecase.RankingRow) []rankingRowDTO {
	out := make([]rankingRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, rankingRowDTO{
			Rank:     row.Rank,
			Label:    row.Label,
			Selected: row.Selected,
			Values:   row.Values,
			Player:   playerToDTO(row.Record),
		})
	}
	return out
}

func searchToDTO(res usecase.SearchResult) searchResponseDTO {
	labels := res.Labels
	if labels == nil {
		labels = []string{}
	}
	return searchResponseDTO{
		VariantID: res.Variant.ID,
		Metrics:   res.Variant.MetricKeys,
		Filter:    filterStateToDTO(res.Filter),
		Total:     res.Total,
		Empty:     res.Empty,
		Labels:    labels,
		Ranges:    rangesToDTO(res.Ranges),
		Rows:      rowsToDTO(res.Rows),
		Selected:  rowsToDTO(res.Selected),
	}
}

func profileToDTO(p usecase.ProfiledPlayer) profileDTO {
	return profileDTO{
		Label:   p.Label,
		Caption: p.Caption,
		Rank:    p.Rank,
		Values:  p.Values,
		Scaled:  p.Scaled,
		Player:  playerToDTO(p.Record),
	}
}

func compareToDTO(res usecase.CompareResult) compareResponseDTO {
	out := compareResponseDTO{
		VariantID:        res.Variant.ID,
		Metrics:          res.Variant.MetricKeys,
		Filter:           filterStateToDTO(res.Filter),
		Population:       res.Population,
		Ranges:           rangesToDTO(res.Ranges),
		Primary:          profileToDTO(res.Primary),
		SecondaryOptions: res.SecondaryOptions,
		Selected:         rowsToDTO(res.Selected),
	}
	if res.Secondary != nil {
		secondary := profileToDTO(*res.Secondary)
		out.Secondary = &secondary
	}
	return out
}
