package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProgressSnapshot is a point-in-time capture of the unlock set for one
// taxonomy. Snapshots are whole-record: the unlock engine's progress is
// immutable, so every unlock writes a complete new snapshot.
type ProgressSnapshot struct {
	ID          string
	Sequence    int64
	Taxonomy    string // taxonomy name the IDs belong to
	Timestamp   time.Time
	UnlockedIDs []string
}

// ProgressRepo manages progress snapshots.
type ProgressRepo interface {
	// Save stores a new snapshot, assigning ID and sequence.
	Save(ctx context.Context, snap *ProgressSnapshot) error

	// Latest returns the most recent snapshot for a taxonomy, or nil if
	// none exists.
	Latest(ctx context.Context, taxonomy string) (*ProgressSnapshot, error)

	// Prune deletes all but the keep most recent snapshots per taxonomy.
	Prune(ctx context.Context, taxonomy string, keep int) error

	// Reset deletes every snapshot for a taxonomy.
	Reset(ctx context.Context, taxonomy string) error
}

type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Save(ctx context.Context, snap *ProgressSnapshot) error {
	data, err := json.Marshal(snap.UnlockedIDs)
	if err != nil {
		return fmt.Errorf("marshal unlocked ids: %w", err)
	}

	var seq sql.NullInt64
	err = r.db.QueryRowContext(ctx,
		`SELECT MAX(sequence) FROM progress_snapshots WHERE taxonomy = ?`,
		snap.Taxonomy).Scan(&seq)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	snap.ID = uuid.New().String()
	snap.Sequence = seq.Int64 + 1
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO progress_snapshots (id, sequence, taxonomy, timestamp, data) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.Sequence, snap.Taxonomy, snap.Timestamp.Format(time.RFC3339Nano), string(data))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *progressRepo) Latest(ctx context.Context, taxonomy string) (*ProgressSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, taxonomy, timestamp, data
		 FROM progress_snapshots WHERE taxonomy = ?
		 ORDER BY sequence DESC LIMIT 1`, taxonomy)

	var (
		snap ProgressSnapshot
		ts   string
		data string
	)
	err := row.Scan(&snap.ID, &snap.Sequence, &snap.Taxonomy, &ts, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	snap.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &snap.UnlockedIDs); err != nil {
		return nil, fmt.Errorf("unmarshal unlocked ids: %w", err)
	}
	return &snap, nil
}

func (r *progressRepo) Prune(ctx context.Context, taxonomy string, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM progress_snapshots
		 WHERE taxonomy = ? AND sequence <= (
			SELECT MAX(sequence) - ? FROM progress_snapshots WHERE taxonomy = ?
		 )`, taxonomy, keep, taxonomy)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context, taxonomy string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM progress_snapshots WHERE taxonomy = ?`, taxonomy)
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
