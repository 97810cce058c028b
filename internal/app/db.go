package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/config"
)

const (
	dbPingTimeout        = 5 * time.Second
	maxTracedQueryLength = 512
)

// OpenDB opens an instrumented postgres pool.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := postgresDSN(cfg.DBURL, cfg.ServiceName, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithQueryFormatter(traceQuery),
	}
	if name := databaseName(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// postgresDSN tags connections with the service name and, for poolers that
// cannot handle binary prepared results, sets disable_prepared_binary_result.
// Values already present in raw win.
func postgresDSN(raw, appName string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	set := map[string]string{}
	if appName = strings.TrimSpace(appName); appName != "" {
		set["application_name"] = appName
	}
	if disablePreparedBinary {
		set["disable_prepared_binary_result"] = "yes"
	}
	if len(set) == 0 {
		return raw
	}

	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		query := parsed.Query()
		for k, v := range set {
			if query.Get(k) == "" {
				query.Set(k, v)
			}
		}
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	// key=value form
	out := raw
	for _, k := range []string{"application_name", "disable_prepared_binary_result"} {
		v, ok := set[k]
		if !ok || strings.Contains(" "+out, " "+k+"=") {
			continue
		}
		out += " " + k + "='" + strings.ReplaceAll(v, "'", `\'`) + "'"
	}
	return strings.TrimSpace(out)
}

func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}
	for _, token := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

var (
	queryWhitespace = regexp.MustCompile(`\s+`)
	valueTuples     = regexp.MustCompile(`(?i)(values \([^()]*\))((?:, ?\([^()]*\))+)`)
)

// traceQuery shortens query text for span attributes. Roster imports insert
// hundreds of rows per statement, so only the first VALUES tuple is kept.
func traceQuery(query string) string {
	query = strings.TrimSpace(queryWhitespace.ReplaceAllString(query, " "))
	query = valueTuples.ReplaceAllStringFunc(query, func(m string) string {
		parts := valueTuples.FindStringSubmatch(m)
		return fmt.Sprintf("%s /* +%d rows */", parts[1], strings.Count(parts[2], "("))
	})
	if len(query) <= maxTracedQueryLength {
		return query
	}
	return query[:maxTracedQueryLength] + "..."
}
