package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
)

// SQLPlaceCache is a Postgres-backed cache mapping normalized place queries to points.
// Entries older than TTL are treated as misses. A zero TTL never expires.
type SQLPlaceCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLPlaceCache(db *sql.DB, ttl time.Duration) *SQLPlaceCache {
	return &SQLPlaceCache{DB: db, TTL: ttl}
}

// InitSchema creates the place_cache table.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS place_cache (
        query TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lng DOUBLE PRECISION NOT NULL,
        resolved_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_place_cache_resolved_at
    ON place_cache(resolved_at);
	`,
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}
	return nil
}

func (s *SQLPlaceCache) Get(ctx context.Context, query string) (_ domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "place.cache.Get")(&err)

	if s.DB == nil {
		return domain.GeoPoint{}, false, errors.New("place cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.GeoPoint{}, false, nil
	}

	// A zero cutoff matches every row.
	var cutoff time.Time
	if s.TTL > 0 {
		cutoff = time.Now().Add(-s.TTL)
	}

	q := `
	SELECT lat, lng
    FROM place_cache
    WHERE query = $1
        AND resolved_at > $2;
	`

	var p domain.GeoPoint
	err = s.DB.QueryRowContext(ctx, q, query, cutoff).Scan(&p.Lat, &p.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeoPoint{}, false, nil
	}
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get place cache: query place_cache table: %w", err)
	}

	return p, true, nil
}

func (s *SQLPlaceCache) Put(ctx context.Context, query string, p domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("place cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("insert place cache: empty query key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO place_cache (query, lat, lng, resolved_at)
    VALUES ($1, $2, $3, now())
	ON CONFLICT (query) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		resolved_at = EXCLUDED.resolved_at;
	`, query, p.Lat, p.Lng)
	if err != nil {
		return fmt.Errorf("insert place cache query=%q: %w", query, err)
	}

	return nil
}
