package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/turbgrid/internal/turbulence"
)

// ErrGridNotFound is returned when no snapshot has the requested id.
var ErrGridNotFound = errors.New("sqlite: grid snapshot not found")

// GridStore persists turbulence snapshots in the turbulence_grids table.
type GridStore struct {
	db *sql.DB
}

// NewGridStore creates a new GridStore.
func NewGridStore(db *sql.DB) *GridStore {
	return &GridStore{db: db}
}

var _ turbulence.SnapshotStore = (*GridStore)(nil)

// InsertSnapshot stores s and returns its id. If s.GridID is empty a new
// UUID is generated and written back to s.
func (s *GridStore) InsertSnapshot(snap *turbulence.Snapshot) (string, error) {
	if snap == nil {
		return "", fmt.Errorf("insert grid: nil snapshot")
	}
	if snap.GridID == "" {
		snap.GridID = uuid.New().String()
	}
	if snap.TakenUnixNanos == 0 {
		snap.TakenUnixNanos = time.Now().UnixNano()
	}
	sampling := snap.Sampling
	if sampling == "" {
		sampling = turbulence.SamplingSequential
	}

	query := `
		INSERT INTO turbulence_grids (
			grid_id, taken_unix_nanos, samples, spacing,
			origin_x, origin_y, origin_z,
			l_min, l_max, b_rms, spectral_index,
			seed, sampling, cells_blob, reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		snap.GridID,
		snap.TakenUnixNanos,
		snap.Samples,
		snap.Spacing,
		snap.Origin.X, snap.Origin.Y, snap.Origin.Z,
		snap.Params.LMin,
		snap.Params.LMax,
		snap.Params.Brms,
		snap.Params.SpectralIndex,
		snap.Seed,
		string(sampling),
		snap.CellsBlob,
		nullString(snap.Reason),
	)
	if err != nil {
		return "", fmt.Errorf("insert grid: %w", err)
	}
	return snap.GridID, nil
}

const selectColumns = `
	grid_id, taken_unix_nanos, samples, spacing,
	origin_x, origin_y, origin_z,
	l_min, l_max, b_rms, spectral_index,
	seed, sampling, cells_blob, reason
`

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*turbulence.Snapshot, error) {
	snap := &turbulence.Snapshot{}
	var sampling string
	var reason sql.NullString
	err := row.Scan(
		&snap.GridID, &snap.TakenUnixNanos, &snap.Samples, &snap.Spacing,
		&snap.Origin.X, &snap.Origin.Y, &snap.Origin.Z,
		&snap.Params.LMin, &snap.Params.LMax, &snap.Params.Brms, &snap.Params.SpectralIndex,
		&snap.Seed, &sampling, &snap.CellsBlob, &reason,
	)
	if err != nil {
		return nil, err
	}
	snap.Sampling = turbulence.SamplingMode(sampling)
	if reason.Valid {
		snap.Reason = reason.String
	}
	return snap, nil
}

// Get returns the snapshot with the given id.
func (s *GridStore) Get(gridID string) (*turbulence.Snapshot, error) {
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM turbulence_grids WHERE grid_id = ?`, gridID)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrGridNotFound, gridID)
	}
	if err != nil {
		return nil, fmt.Errorf("get grid: %w", err)
	}
	return snap, nil
}

// ListRecent returns up to limit snapshots, newest first.
func (s *GridStore) ListRecent(limit int) ([]*turbulence.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT `+selectColumns+` FROM turbulence_grids ORDER BY taken_unix_nanos DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list grids: %w", err)
	}
	defer rows.Close()

	var snaps []*turbulence.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grid: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// Delete removes a snapshot by id.
func (s *GridStore) Delete(gridID string) error {
	result, err := s.db.Exec("DELETE FROM turbulence_grids WHERE grid_id = ?", gridID)
	if err != nil {
		return fmt.Errorf("delete grid: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete grid rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrGridNotFound, gridID)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
