package postgres

import (
	"database/sql"
	"time"
)

type scoutingPlayerTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	VariantID     string         `db:"variant_id"`
	RowIndex      int            `db:"row_index"`
	Name          string         `db:"name"`
	Team          string         `db:"team"`
	Position      string         `db:"position"`
	Foot          string         `db:"foot"`
	MinutesPlayed int            `db:"minutes_played"`
	Region        sql.NullString `db:"region"`
	Competition   sql.NullString `db:"competition"`
	Season        sql.NullString `db:"season"`
	OverallScore  float64        `db:"overall_score"`
	Metrics       string         `db:"metrics"`
	CreatedAt     time.Time      `db:"created_at"`
}

// scoutingPlayerColumns is the insert column order used by ReplaceVariant.
var scoutingPlayerColumns = []string{
	"public_id",
	"variant_id",
	"import_public_id",
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
	"metrics",
}

type scoutingImportInsertModel struct {
	PublicID   string `db:"public_id"`
	VariantID  string `db:"variant_id"`
	SourceFile string `db:"source_file"`
	RowCount   int    `db:"row_count"`
}
