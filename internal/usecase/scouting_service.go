package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/scouting"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/textnorm"
	"go.opentelemetry.io/otel/attribute"
)

// maxHighlights caps the selections a ranking can mark.
const maxHighlights = 2

// FilterInput is the caller's raw filter choice. Nil minute bounds default
// to the variant-wide bounds; empty role, foot and keys do not restrict.
type FilterInput struct {
	MinMinutes      *int
	MaxMinutes      *int
	RoleID          string
	Foot            string
	CompetitionKeys []string
}

type OptionsInput struct {
	VariantID string
	RoleID    string
}

type CompetitionOption struct {
	Key     string
	Season  string
	Players int
	// RecommendedMinMinutes is the advised playing-time floor for the
	// bucket's season, nil when no guideline applies.
	RecommendedMinMinutes *int
}

type OptionsResult struct {
	Variant      variant.Variant
	Minutes      scouting.MinutesRange
	Roles        []variant.Role
	Feet         []player.Foot
	Competitions []CompetitionOption
}

type SearchInput struct {
	VariantID string
	Filter    FilterInput
	// Highlight lists selection labels whose ranking rows get Selected=true.
	Highlight []string
	Limit     int
}

type RankingRow struct {
	Rank     int
	Label    string
	Record   player.Record
	Values   []float64
	Selected bool
}

type SearchResult struct {
	Variant  variant.Variant
	Filter   scouting.FilterState
	Total    int
	Empty    bool
	Labels   []string
	Ranges   []scouting.MetricRange
	Rows     []RankingRow
	Selected []RankingRow
}

type CompareInput struct {
	VariantID string
	Filter    FilterInput
	Primary   string
	Secondary *string
}

// ProfiledPlayer is one side of a comparison.
type ProfiledPlayer struct {
	Label   string
	Caption string
	Record  player.Record
	Rank    int
	Values  []float64
	Scaled  []float64
}

type CompareResult struct {
	Variant          variant.Variant
	Filter           scouting.FilterState
	Population       int
	Ranges           []scouting.MetricRange
	Primary          ProfiledPlayer
	Secondary        *ProfiledPlayer
	SecondaryOptions []string
	Selected         []RankingRow
}

// ScoutingService runs one filter, range, extract and rank pass per call
// over the memoized roster.
type ScoutingService struct {
	rosters *RosterService
}

func NewScoutingService(rosters *RosterService) *ScoutingService {
	return &ScoutingService{rosters: rosters}
}

func (s *ScoutingService) ListVariants(ctx context.Context) []variant.Variant {
	_, span := startUsecaseSpan(ctx, "usecase.ScoutingService.ListVariants")
	defer span.End()

	return s.rosters.Catalog().List()
}

// Options derives the selectable filter values. Minutes bounds come from the
// whole variant; feet are those present after the role filter.
func (s *ScoutingService) Options(ctx context.Context, input OptionsInput) (OptionsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoutingService.Options", attribute.String("variant.id", input.VariantID))
	defer span.End()

	v, records, err := s.roster(ctx, input.VariantID)
	if err != nil {
		return OptionsResult{}, err
	}
	role, ok := v.FindRole(input.RoleID)
	if !ok {
		return OptionsResult{}, fmt.Errorf("%w: unknown role %q for variant %s", ErrInvalidInput, input.RoleID, v.ID)
	}

	bounds, _ := scouting.MinutesBounds(records)
	byRole := scouting.Apply(records, scouting.FilterState{Minutes: bounds, Role: role})

	buckets := scouting.CompetitionBuckets(byRole)
	competitions := make([]CompetitionOption, 0, len(buckets))
	for _, b := range buckets {
		opt := CompetitionOption{Key: b.Key, Season: b.Season, Players: b.Count}
		if minutes, ok := s.rosters.Catalog().RecommendedMinMinutes(b.Season); ok {
			opt.RecommendedMinMinutes = &minutes
		}
		competitions = append(competitions, opt)
	}

	return OptionsResult{
		Variant:      v,
		Minutes:      bounds,
		Roles:        v.RoleOptions(),
		Feet:         scouting.FootOptions(byRole),
		Competitions: competitions,
	}, nil
}

// Search filters and ranks the roster. An empty population is a normal
// result with Empty set and undefined ranges.
func (s *ScoutingService) Search(ctx context.Context, input SearchInput) (SearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoutingService.Search", attribute.String("variant.id", input.VariantID))
	defer span.End()

	if input.Limit < 0 {
		return SearchResult{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if len(input.Highlight) > maxHighlights {
		return SearchResult{}, fmt.Errorf("%w: at most %d players can be highlighted", ErrInvalidInput, maxHighlights)
	}
	v, records, err := s.roster(ctx, input.VariantID)
	if err != nil {
		return SearchResult{}, err
	}
	state, err := buildFilterState(v, records, input.Filter)
	if err != nil {
		return SearchResult{}, err
	}

	filtered := scouting.Apply(records, state)
	ranges, err := scouting.ComputeRanges(filtered, v.MetricKeys)
	if err != nil {
		return SearchResult{}, dataQualityError(err)
	}
	resolver := scouting.NewResolver(filtered)

	highlight := make(map[string]struct{}, len(input.Highlight))
	for _, label := range input.Highlight {
		if canonical, ok := resolver.Canonical(label); ok {
			highlight[canonical] = struct{}{}
		}
	}

	rows, err := rankingRows(v, filtered, highlight)
	if err != nil {
		return SearchResult{}, err
	}
	result := SearchResult{
		Variant:  v,
		Filter:   state,
		Total:    len(filtered),
		Empty:    len(filtered) == 0,
		Labels:   resolver.Labels(),
		Ranges:   ranges,
		Selected: selectedRows(rows),
		Rows:     rows,
	}
	if input.Limit > 0 && len(result.Rows) > input.Limit {
		result.Rows = result.Rows[:input.Limit]
	}
	return result, nil
}

// Compare resolves the primary and optional secondary selection inside the
// filtered population and returns their profiles with the cohort ranges.
func (s *ScoutingService) Compare(ctx context.Context, input CompareInput) (CompareResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoutingService.Compare", attribute.String("variant.id", input.VariantID))
	defer span.End()

	primaryLabel := strings.TrimSpace(input.Primary)
	if primaryLabel == "" {
		return CompareResult{}, fmt.Errorf("%w: primary player is required", ErrInvalidInput)
	}
	var secondaryLabel string
	if input.Secondary != nil {
		secondaryLabel = strings.TrimSpace(*input.Secondary)
		if secondaryLabel != "" && textnorm.Normalize(secondaryLabel) == textnorm.Normalize(primaryLabel) {
			return CompareResult{}, fmt.Errorf("%w: secondary player must differ from primary", ErrInvalidInput)
		}
	}

	v, records, err := s.roster(ctx, input.VariantID)
	if err != nil {
		return CompareResult{}, err
	}
	state, err := buildFilterState(v, records, input.Filter)
	if err != nil {
		return CompareResult{}, err
	}

	filtered := scouting.Apply(records, state)
	if len(filtered) == 0 {
		return CompareResult{}, fmt.Errorf("%w: %w", ErrNotFound, scouting.ErrEmptyFilterResult)
	}
	ranges, err := scouting.ComputeRanges(filtered, v.MetricKeys)
	if err != nil {
		return CompareResult{}, dataQualityError(err)
	}
	resolver := scouting.NewResolver(filtered)

	primary, err := s.profile(v, resolver, ranges, primaryLabel)
	if err != nil {
		return CompareResult{}, err
	}
	selected := map[string]struct{}{primary.Label: {}}

	var secondary *ProfiledPlayer
	if secondaryLabel != "" {
		p, err := s.profile(v, resolver, ranges, secondaryLabel)
		if err != nil {
			return CompareResult{}, err
		}
		if p.Label == primary.Label {
			return CompareResult{}, fmt.Errorf("%w: secondary player must differ from primary", ErrInvalidInput)
		}
		secondary = &p
		selected[p.Label] = struct{}{}
	}

	rows, err := rankingRows(v, filtered, selected)
	if err != nil {
		return CompareResult{}, err
	}
	for _, row := range rows {
		switch {
		case row.Record.ID == primary.Record.ID:
			primary.Rank = row.Rank
		case secondary != nil && row.Record.ID == secondary.Record.ID:
			secondary.Rank = row.Rank
		}
	}

	primaryKey := textnorm.Normalize(primary.Label)
	options := make([]string, 0, resolver.Len())
	for _, label := range resolver.Labels() {
		if label != primaryKey {
			options = append(options, label)
		}
	}

	return CompareResult{
		Variant:          v,
		Filter:           state,
		Population:       len(filtered),
		Ranges:           ranges,
		Primary:          primary,
		Secondary:        secondary,
		SecondaryOptions: options,
		Selected:         selectedRows(rows),
	}, nil
}

func (s *ScoutingService) roster(ctx context.Context, variantID string) (variant.Variant, []player.Record, error) {
	if strings.TrimSpace(variantID) == "" {
		return variant.Variant{}, nil, fmt.Errorf("%w: variant id is required", ErrInvalidInput)
	}
	v, err := s.rosters.Variant(variantID)
	if err != nil {
		return variant.Variant{}, nil, err
	}
	records, err := s.rosters.Records(ctx, v)
	if err != nil {
		return variant.Variant{}, nil, err
	}
	return v, records, nil
}

func (s *ScoutingService) profile(v variant.Variant, resolver *scouting.Resolver, ranges []scouting.MetricRange, label string) (ProfiledPlayer, error) {
	rec, err := resolver.Resolve(label)
	if err != nil {
		return ProfiledPlayer{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	values, err := scouting.ExtractProfile(rec, v.MetricKeys)
	if err != nil {
		return ProfiledPlayer{}, dataQualityError(err)
	}
	scaled := make([]float64, len(values))
	for i, value := range values {
		scaled[i], err = ranges[i].Scale(value)
		if err != nil {
			return ProfiledPlayer{}, dataQualityError(err)
		}
	}

	canonical := rec.DisplayLabel()
	return ProfiledPlayer{
		Label:   canonical,
		Caption: Caption(rec),
		Record:  rec,
		Values:  values,
		Scaled:  scaled,
	}, nil
}

// Caption is the comparison legend text: "name (team) (N min)".
func Caption(rec player.Record) string {
	return rec.DisplayLabel() + " (" + strconv.Itoa(rec.MinutesPlayed) + " min)"
}

func buildFilterState(v variant.Variant, records []player.Record, in FilterInput) (scouting.FilterState, error) {
	bounds, _ := scouting.MinutesBounds(records)
	minutes := bounds
	if in.MinMinutes != nil {
		minutes.Min = *in.MinMinutes
	}
	if in.MaxMinutes != nil {
		minutes.Max = *in.MaxMinutes
	}
	if !minutes.Valid() {
		return scouting.FilterState{}, fmt.Errorf("%w: minutes range [%d, %d] is invalid", ErrInvalidInput, minutes.Min, minutes.Max)
	}

	role, ok := v.FindRole(in.RoleID)
	if !ok {
		return scouting.FilterState{}, fmt.Errorf("%w: unknown role %q for variant %s", ErrInvalidInput, in.RoleID, v.ID)
	}

	var foot player.Foot
	switch raw := strings.ToLower(strings.TrimSpace(in.Foot)); raw {
	case "", "any":
	default:
		foot = player.Foot(raw)
		if !foot.Valid() {
			return scouting.FilterState{}, fmt.Errorf("%w: unknown foot %q", ErrInvalidInput, in.Foot)
		}
	}

	keys := make([]string, 0, len(in.CompetitionKeys))
	for _, k := range in.CompetitionKeys {
		if k != "" {
			keys = append(keys, k)
		}
	}

	return scouting.FilterState{
		Minutes:         minutes,
		Role:            role,
		Foot:            foot,
		CompetitionKeys: keys,
	}, nil
}

func rankingRows(v variant.Variant, filtered []player.Record, selected map[string]struct{}) ([]RankingRow, error) {
	ranked := scouting.Rank(filtered)
	rows := make([]RankingRow, 0, len(ranked))
	for _, r := range ranked {
		values, err := scouting.ExtractProfile(r.Record, v.MetricKeys)
		if err != nil {
			return nil, dataQualityError(err)
		}
		label := r.Record.DisplayLabel()
		_, isSelected := selected[label]
		rows = append(rows, RankingRow{
			Rank:     r.Rank,
			Label:    label,
			Record:   r.Record,
			Values:   values,
			Selected: isSelected,
		})
	}
	return rows, nil
}

func selectedRows(rows []RankingRow) []RankingRow {
	out := make([]RankingRow, 0, 2)
	for _, row := range rows {
		if row.Selected {
			out = append(out, row)
		}
	}
	return out
}

func dataQualityError(err error) error {
	if errors.Is(err, scouting.ErrMissingMetric) || errors.Is(err, scouting.ErrUndefinedRange) {
		return fmt.Errorf("%w: %w", ErrDataQuality, err)
	}
	return err
}
