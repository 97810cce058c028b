package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	qb "github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/querybuilder"
)

// insertChunkSize keeps multi-row inserts below the 65535 bind parameter
// limit of the postgres protocol.
const insertChunkSize = 500

type PlayerRepository struct {
	db *sqlx.DB
}

var scoutingPlayerSelectColumns = []string{
	"id",
	"public_id::text AS public_id",
	"variant_id",
	"row_index",
	"name",
	"team",
	"position",
	"foot",
	"minutes_played",
	"region",
	"competition",
	"season",
	"overall_score",
	"metrics::text AS metrics",
	"created_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByVariant(ctx context.Context, v variant.Variant) ([]player.Record, error) {
	query, args, err := listByVariantQuery(v.ID)
	if err != nil {
		return nil, fmt.Errorf("build select scouting players query: %w", err)
	}

	var rows []scoutingPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isSchemaMissing(err) {
			return nil, fmt.Errorf("%w: select scouting players variant=%s: %w", player.ErrSchemaMismatch, v.ID, err)
		}
		return nil, fmt.Errorf("select scouting players variant=%s: %w", v.ID, err)
	}

	out := make([]player.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := recordFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", player.ErrSchemaMismatch, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReplaceVariant swaps the stored roster of a variant for records in one
// transaction and records the import.
func (r *PlayerRepository) ReplaceVariant(ctx context.Context, v variant.Variant, importID string, records []player.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx replace scouting players")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("scouting_players").
		Where(qb.Eq("variant_id", v.ID)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete scouting players query")
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return crerr.Wrapf(err, "delete scouting players variant=%s", v.ID)
	}

	for start := 0; start < len(records); start += insertChunkSize {
		end := min(start+insertChunkSize, len(records))
		query, args, err := insertPlayersQuery(v.ID, importID, start, records[start:end])
		if err != nil {
			return crerr.Wrap(err, "build insert scouting players query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.WithDetailf(
				crerr.Wrapf(err, "insert scouting players variant=%s", v.ID),
				"rows %d-%d", start, end-1,
			)
		}
	}

	importQuery, importArgs, err := qb.InsertModel("scouting_imports", scoutingImportInsertModel{
		PublicID:   importID,
		VariantID:  v.ID,
		SourceFile: v.SourceFile,
		RowCount:   len(records),
	}, "")
	if err != nil {
		return crerr.Wrap(err, "build insert scouting import query")
	}
	if _, err := tx.ExecContext(ctx, importQuery, importArgs...); err != nil {
		return crerr.Wrapf(err, "insert scouting import %s", importID)
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit replace scouting players tx")
	}
	return nil
}

func listByVariantQuery(variantID string) (string, []any, error) {
	return qb.Select(scoutingPlayerSelectColumns...).From("scouting_players").
		Where(qb.Eq("variant_id", variantID)).
		OrderBy("row_index", "id").
		ToSQL()
}

// insertPlayersQuery builds one multi-row insert. offset is the row index of
// records[0] within the whole import.
func insertPlayersQuery(variantID, importID string, offset int, records []player.Record) (string, []any, error) {
	b := qb.InsertInto("scouting_players").Columns(scoutingPlayerColumns...)
	for i, rec := range records {
		metrics, err := encodeMetrics(rec.Metrics)
		if err != nil {
			return "", nil, fmt.Errorf("encode metrics row=%d: %w", offset+i, err)
		}
		b.Values(
			rec.ID,
			variantID,
			importID,
			offset+i,
			rec.Name,
			rec.Team,
			rec.Position,
			string(rec.Foot),
			rec.MinutesPlayed,
			nullableString(rec.Region),
			nullableString(rec.Competition),
			nullableString(rec.Season),
			rec.OverallScore,
			metrics,
		)
	}
	return b.ToSQL()
}

func recordFromRow(row scoutingPlayerTableModel) (player.Record, error) {
	metrics, err := decodeMetrics(row.Metrics)
	if err != nil {
		return player.Record{}, fmt.Errorf("decode metrics player=%s row=%d: %w", row.PublicID, row.RowIndex, err)
	}
	foot := player.Foot(row.Foot)
	if !foot.Valid() {
		foot = player.ParseFoot(row.Foot)
	}
	return player.Record{
		ID:            row.PublicID,
		Name:          row.Name,
		Team:          row.Team,
		Position:      row.Position,
		Foot:          foot,
		MinutesPlayed: row.MinutesPlayed,
		Region:        nullStringPtr(row.Region),
		Competition:   nullStringPtr(row.Competition),
		Season:        nullStringPtr(row.Season),
		Metrics:       metrics,
		OverallScore:  row.OverallScore,
	}, nil
}
