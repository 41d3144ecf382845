package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/peyknews/peyk/app/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createTestArticle(t *testing.T, repo database.ArticleRepository, id, sourceURL string) {
	t.Helper()

	err := repo.Create(&database.Article{
		ID:        id,
		SourceURL: sourceURL,
		Title:     "Test " + id,
		Status:    database.StatusNew,
	})
	if err != nil {
		t.Fatalf("failed to create article %s: %v", id, err)
	}
}
