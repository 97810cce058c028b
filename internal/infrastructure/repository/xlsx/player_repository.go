package xlsx

import (
	"context"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/id"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
)

// PlayerRepository reads variant rosters from the workbooks in a directory.
// Each variant's SourceFile names its workbook; the first sheet is used.
type PlayerRepository struct {
	dataDir string
	logger  *logging.Logger
}

func NewPlayerRepository(dataDir string, logger *logging.Logger) *PlayerRepository {
	return &PlayerRepository{dataDir: dataDir, logger: logger}
}

func (r *PlayerRepository) ListByVariant(ctx context.Context, v variant.Variant) ([]player.Record, error) {
	return ReadFile(ctx, filepath.Join(r.dataDir, v.SourceFile), v, r.logger)
}

// ReadFile parses one workbook on disk.
func ReadFile(ctx context.Context, path string, v variant.Variant, logger *logging.Logger) ([]player.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open workbook %s", path)
	}
	defer f.Close()
	return readWorkbook(ctx, f, v, logger)
}

// Read parses a workbook from a stream.
func Read(ctx context.Context, src io.Reader, v variant.Variant, logger *logging.Logger) ([]player.Record, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, crerr.Wrapf(err, "open workbook for variant %s", v.ID)
	}
	defer f.Close()
	return readWorkbook(ctx, f, v, logger)
}

func readWorkbook(ctx context.Context, f *excelize.File, v variant.Variant, logger *logging.Logger) ([]player.Record, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, crerr.Wrapf(player.ErrSchemaMismatch, "variant %s: workbook has no sheets", v.ID)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, crerr.Wrapf(err, "read sheet %s", sheets[0])
	}
	if len(rows) == 0 {
		return nil, crerr.Wrapf(player.ErrSchemaMismatch, "variant %s: sheet %s is empty", v.ID, sheets[0])
	}

	layout, err := resolveLayout(v, rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]player.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if i%512 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if blankRow(row) {
			continue
		}
		rowNumber := i + 2
		rec, err := layout.record(v, i, row)
		if err != nil {
			logger.WarnContext(ctx, "workbook row skipped",
				"variant", v.ID,
				"row", rowNumber,
				"error", err,
			)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// layout holds the zero-based column index of every attribute the variant
// reads. Metric indexes follow the variant's metric order.
type layout struct {
	name, team, position, foot, minutes int
	region, competition, season         int
	score                               int
	metrics                             []int
}

func resolveLayout(v variant.Variant, header []string) (layout, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	var missing []string
	col := func(name string) int {
		i, ok := index[strings.TrimSpace(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	c := v.Columns
	l := layout{
		name:        col(c.Name),
		team:        col(c.Team),
		position:    col(c.Position),
		foot:        col(c.Foot),
		minutes:     col(c.Minutes),
		region:      col(c.Region),
		competition: col(c.Competition),
		season:      col(c.Season),
		score:       col(v.ScoreColumn),
		metrics:     make([]int, len(v.MetricKeys)),
	}
	for i, key := range v.MetricKeys {
		l.metrics[i] = col(key)
	}

	if len(missing) > 0 {
		err := crerr.Wrapf(player.ErrSchemaMismatch, "variant %s: missing columns %s", v.ID, strings.Join(quoteAll(missing), ", "))
		return layout{}, crerr.WithDetailf(err, "header: %s", strings.Join(header, " | "))
	}
	return l, nil
}

func (l layout) record(v variant.Variant, rowIdx int, row []string) (player.Record, error) {
	name := cell(row, l.name)
	team := cell(row, l.team)
	season := cell(row, l.season)

	minutes, err := parseMinutes(cell(row, l.minutes))
	if err != nil {
		return player.Record{}, crerr.Wrapf(err, "%s (%s): minutes", name, team)
	}
	score, err := parseNumber(cell(row, l.score))
	if err != nil {
		return player.Record{}, crerr.Wrapf(err, "%s (%s): score", name, team)
	}

	// Blank or non-numeric metric cells stay absent; validation downstream
	// rejects the row instead of treating it as zero.
	metrics := make(map[string]float64, len(v.MetricKeys))
	for i, key := range v.MetricKeys {
		raw := cell(row, l.metrics[i])
		if raw == "" {
			continue
		}
		if value, err := parseNumber(raw); err == nil {
			metrics[key] = value
		}
	}

	return player.Record{
		ID:            id.Derive(v.ID, strconv.Itoa(rowIdx), name, team, season),
		Name:          name,
		Team:          team,
		Position:      cell(row, l.position),
		Foot:          player.ParseFoot(cell(row, l.foot)),
		MinutesPlayed: minutes,
		Region:        player.StringPtr(cell(row, l.region)),
		Competition:   player.StringPtr(cell(row, l.competition)),
		Season:        player.StringPtr(season),
		Metrics:       metrics,
		OverallScore:  score,
	}, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseNumber(raw string) (float64, error) {
	if raw == "" {
		return 0, crerr.New("value is empty")
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, crerr.Wrapf(err, "parse %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, crerr.Newf("%q is not a finite number", raw)
	}
	return v, nil
}

// parseMinutes accepts whole or fractional minute counts ("1234", "1234.0")
// and rounds to the nearest minute.
func parseMinutes(raw string) (int, error) {
	v, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	return int(math.Round(v)), nil
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strconv.Quote(s)
	}
	return out
}
