package database

import (
	"fmt"
	"time"
)

var _ DedupRepository = (*dedupRepository)(nil)

type dedupRepository struct {
	db *DB
}

func NewDedupRepository(db *DB) DedupRepository {
	return &dedupRepository{db: db}
}

// IsNewAndRecord atomically records the hash and reports whether this call
// performed the insert. The primary key plus the store's single writer
// guarantee that concurrent callers with the same hash cannot both be
// told "new".
func (r *dedupRepository) IsNewAndRecord(hash string) (bool, error) {
	res, err := r.db.Exec(`
		INSERT OR IGNORE INTO seen_hashes (hash, created_at) VALUES (?, ?)
	`, hash, formatTime(time.Now()))
	if err != nil {
		return false, fmt.Errorf("failed to record dedup hash: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected == 1, nil
}

// Delete removes a single recorded hash so the item can be admitted
// again on a later pass.
func (r *dedupRepository) Delete(hash string) error {
	if _, err := r.db.Exec(`DELETE FROM seen_hashes WHERE hash = ?`, hash); err != nil {
		return fmt.Errorf("failed to delete dedup hash: %w", err)
	}
	return nil
}

// DeleteOlderThan evicts hashes recorded before cutoff. Articles scraped
// long ago drop off the feeds themselves, so an aged-out hash cannot
// readmit a live duplicate.
func (r *dedupRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM seen_hashes WHERE created_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to prune dedup hashes: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return deleted, nil
}
