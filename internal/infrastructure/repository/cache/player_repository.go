package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/id"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/resilience"
)

const snapshotKeyPrefix = "scouting:roster:"

// PlayerRepository keeps a Redis snapshot of each variant roster in front of
// a slower source. Redis is optional: any Redis failure falls through to the
// wrapped repository, and the breaker stops trying while Redis is down.
type PlayerRepository struct {
	next    player.Repository
	client  redis.UniversalClient
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewPlayerRepository(
	next player.Repository,
	client redis.UniversalClient,
	ttl time.Duration,
	breaker *resilience.CircuitBreaker,
	logger *logging.Logger,
) *PlayerRepository {
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig())
	}
	return &PlayerRepository{
		next:    next,
		client:  client,
		ttl:     ttl,
		breaker: breaker,
		logger:  logger,
	}
}

func (r *PlayerRepository) ListByVariant(ctx context.Context, v variant.Variant) ([]player.Record, error) {
	key := SnapshotKey(v)

	records, hit, err := r.read(ctx, key)
	switch {
	case err != nil:
		r.logger.WarnContext(ctx, "roster snapshot read failed", "variant", v.ID, "key", key, "error", err)
	case hit:
		r.logger.DebugContext(ctx, "roster snapshot hit", "variant", v.ID, "players", len(records))
		return records, nil
	}

	records, err = r.next.ListByVariant(ctx, v)
	if err != nil {
		return nil, err
	}

	if err := r.write(ctx, key, records); err != nil {
		r.logger.WarnContext(ctx, "roster snapshot write failed", "variant", v.ID, "key", key, "error", err)
	}
	return records, nil
}

// Invalidate drops the snapshot of v so the next read goes to the source.
func (r *PlayerRepository) Invalidate(ctx context.Context, v variant.Variant) error {
	return r.breaker.Execute(ctx, func(ctx context.Context) error {
		if err := r.client.Del(ctx, SnapshotKey(v)).Err(); err != nil {
			return crerr.Wrapf(err, "delete roster snapshot %s", v.ID)
		}
		return nil
	})
}

func (r *PlayerRepository) read(ctx context.Context, key string) ([]player.Record, bool, error) {
	var (
		payload []byte
		hit     bool
	)
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		raw, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return crerr.Wrapf(err, "get %s", key)
		}
		payload, hit = raw, true
		return nil
	})
	if err != nil || !hit {
		return nil, false, err
	}

	records, err := decodeSnapshot(payload)
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func (r *PlayerRepository) write(ctx context.Context, key string, records []player.Record) error {
	payload, err := encodeSnapshot(records)
	if err != nil {
		return err
	}
	return r.breaker.Execute(ctx, func(ctx context.Context) error {
		if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			return crerr.Wrapf(err, "set %s", key)
		}
		return nil
	})
}

// SnapshotKey scopes the snapshot to the variant's source file and metric
// list, so a catalog change never serves a stale layout.
func SnapshotKey(v variant.Variant) string {
	layout := id.Derive(v.SourceFile, v.ScoreColumn, strings.Join(v.MetricKeys, ","))
	return snapshotKeyPrefix + v.ID + ":" + layout[:8]
}

type snapshotRecord struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Team          string             `json:"team"`
	Position      string             `json:"position"`
	Foot          string             `json:"foot"`
	MinutesPlayed int                `json:"minutesPlayed"`
	Region        *string            `json:"region,omitempty"`
	Competition   *string            `json:"competition,omitempty"`
	Season        *string            `json:"season,omitempty"`
	Metrics       map[string]float64 `json:"metrics"`
	OverallScore  float64            `json:"overallScore"`
}

func encodeSnapshot(records []player.Record) ([]byte, error) {
	items := make([]snapshotRecord, 0, len(records))
	for _, rec := range records {
		items = append(items, snapshotRecord{
			ID:            rec.ID,
			Name:          rec.Name,
			Team:          rec.Team,
			Position:      rec.Position,
			Foot:          string(rec.Foot),
			MinutesPlayed: rec.MinutesPlayed,
			Region:        rec.Region,
			Competition:   rec.Competition,
			Season:        rec.Season,
			Metrics:       rec.Metrics,
			OverallScore:  rec.OverallScore,
		})
	}
	payload, err := sonic.Marshal(items)
	if err != nil {
		return nil, crerr.Wrap(err, "encode roster snapshot")
	}
	return payload, nil
}

func decodeSnapshot(payload []byte) ([]player.Record, error) {
	var items []snapshotRecord
	if err := sonic.Unmarshal(payload, &items); err != nil {
		return nil, crerr.Wrap(err, "decode roster snapshot")
	}
	out := make([]player.Record, 0, len(items))
	for _, item := range items {
		out = append(out, player.Record{
			ID:            item.ID,
			Name:          item.Name,
			Team:          item.Team,
			Position:      item.Position,
			Foot:          player.Foot(item.Foot),
			MinutesPlayed: item.MinutesPlayed,
			Region:        item.Region,
			Competition:   item.Competition,
			Season:        item.Season,
			Metrics:       item.Metrics,
			OverallScore:  item.OverallScore,
		})
	}
	return out, nil
}
