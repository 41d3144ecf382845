package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ QueueRepository = (*queueRepository)(nil)

type queueRepository struct {
	db *DB
}

func NewQueueRepository(db *DB) QueueRepository {
	return &queueRepository{db: db}
}

// Enqueue inserts a pending entry unless one already exists for the
// (article, stage) pair. Re-enqueue of a pending pair is a no-op.
func (r *queueRepository) Enqueue(articleID string, stage Stage, priority int) error {
	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO queue_entries (article_id, stage, priority, created_at)
		VALUES (?, ?, ?, ?)
	`, articleID, string(stage), priority, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to enqueue %s for article %s: %w", stage, articleID, err)
	}

	return nil
}

// Pop selects the lowest-priority, earliest-created pending entry for the
// stage, deletes it and returns it in a single transaction. Returns nil
// when the stage queue is empty.
func (r *queueRepository) Pop(stage Stage) (*QueueEntry, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin pop transaction: %w", err)
	}
	defer tx.Rollback()

	var e QueueEntry
	var stageStr, createdAt string
	err = tx.QueryRow(`
		SELECT id, article_id, stage, priority, created_at
		FROM queue_entries
		WHERE stage = ?
		ORDER BY priority ASC, id ASC
		LIMIT 1
	`, string(stage)).Scan(&e.ID, &e.ArticleID, &stageStr, &e.Priority, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select queue entry: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM queue_entries WHERE id = ?`, e.ID); err != nil {
		return nil, fmt.Errorf("failed to delete popped entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit pop transaction: %w", err)
	}

	e.Stage = Stage(stageStr)
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// Clear removes all pending entries across all stages. Already popped
// (in-flight) work is unaffected.
func (r *queueRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM queue_entries`); err != nil {
		return fmt.Errorf("failed to clear queues: %w", err)
	}

	return nil
}

func (r *queueRepository) PendingCount(stage Stage) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM queue_entries WHERE stage = ?`, string(stage)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending entries: %w", err)
	}

	return count, nil
}
