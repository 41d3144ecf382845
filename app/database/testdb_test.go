package database

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createTestArticle(t *testing.T, repo ArticleRepository, id, sourceURL string) {
	t.Helper()

	err := repo.Create(&Article{
		ID:        id,
		SourceURL: sourceURL,
		Title:     "Test " + id,
		Category:  "سیاسی",
		Status:    StatusNew,
	})
	if err != nil {
		t.Fatalf("failed to create article %s: %v", id, err)
	}
}
