package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"
)

const (
	pqUndefinedTable  = "42P01"
	pqUndefinedColumn = "42703"
)

// isSchemaMissing reports errors caused by migrations that were never
// applied.
func isSchemaMissing(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pqUndefinedTable, pqUndefinedColumn:
		return true
	}
	return false
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableString(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

func encodeMetrics(metrics map[string]float64) (string, error) {
	if len(metrics) == 0 {
		return "{}", nil
	}
	encoded, err := sonic.Marshal(metrics)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeMetrics(raw string) (map[string]float64, error) {
	raw = strings.TrimSpace(raw)
	out := make(map[string]float64)
	if raw == "" {
		return out, nil
	}
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
