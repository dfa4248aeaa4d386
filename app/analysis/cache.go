package analysis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	fingerprint            TEXT PRIMARY KEY,
	job                    TEXT NOT NULL,
	player                 TEXT NOT NULL,
	variant                TEXT NOT NULL,
	objects                INTEGER NOT NULL,
	replay_size            INTEGER NOT NULL,
	slots                  INTEGER NOT NULL,
	three_finger           REAL NOT NULL,
	cheese_aim             REAL NOT NULL,
	cheese_flashlight      REAL NOT NULL,
	two_handed             INTEGER NOT NULL,
	two_handed_objects     INTEGER NOT NULL,
	raw_pp                 REAL NOT NULL,
	penalised_pp           REAL NOT NULL,
	summary                TEXT NOT NULL,
	analyzed_at            INTEGER NOT NULL
)`

// Cache stores finished reports by replay fingerprint.
type Cache struct {
	db *sql.DB
}

func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCache, err)
	}

	// sqlite serializes writers anyway
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrCache, err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Get(ctx context.Context, fingerprint string) (Report, bool, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT job, player, variant, objects, replay_size, slots, three_finger, cheese_aim,
		       cheese_flashlight, two_handed, two_handed_objects, raw_pp, penalised_pp, summary, analyzed_at
		FROM results WHERE fingerprint = ?`, fingerprint)

	r := Report{Fingerprint: fingerprint, Cached: true}

	var analyzedAt int64

	err := row.Scan(&r.Job, &r.Player, &r.Variant, &r.Objects, &r.ReplaySize, &r.Slots,
		&r.ThreeFingerPenalty, &r.SliderCheeseAim, &r.SliderCheeseFlashlight,
		&r.TwoHanded, &r.TwoHandedObjects, &r.RawPP, &r.PenalisedPP, &r.Summary, &analyzedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, false, nil
	}

	if err != nil {
		return Report{}, false, fmt.Errorf("%w: %w", ErrCache, err)
	}

	r.AnalyzedAt = time.Unix(analyzedAt, 0)

	return r, true, nil
}

func (c *Cache) Put(ctx context.Context, r Report) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO results (fingerprint, job, player, variant, objects, replay_size, slots,
			three_finger, cheese_aim, cheese_flashlight, two_handed, two_handed_objects, raw_pp,
			penalised_pp, summary, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Fingerprint, r.Job, r.Player, r.Variant, r.Objects, r.ReplaySize, r.Slots,
		r.ThreeFingerPenalty, r.SliderCheeseAim, r.SliderCheeseFlashlight,
		r.TwoHanded, r.TwoHandedObjects, r.RawPP, r.PenalisedPP, r.Summary, r.AnalyzedAt.Unix())

	if err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}

	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
