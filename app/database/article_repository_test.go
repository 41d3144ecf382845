package database

import (
	"strings"
	"testing"
)

func TestArticleRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	createTestArticle(t, repo, "a1", "https://x/1")

	a, err := repo.GetByID("a1")
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if a == nil {
		t.Fatal("expected article, got nil")
	}
	if a.Status != StatusNew {
		t.Errorf("expected status NEW, got %s", a.Status)
	}
	if a.SourceURL != "https://x/1" {
		t.Errorf("unexpected source URL: %s", a.SourceURL)
	}

	bySource, err := repo.GetBySourceURL("https://x/1")
	if err != nil {
		t.Fatalf("get by source url failed: %v", err)
	}
	if bySource == nil || bySource.ID != "a1" {
		t.Errorf("expected article a1 by source URL, got %+v", bySource)
	}
}

func TestArticleRepository_GetMissingReturnsNil(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	a, err := repo.GetByID("nope")
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil for missing article, got %+v", a)
	}
}

func TestArticleRepository_SourceURLIsUnique(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	createTestArticle(t, repo, "a1", "https://x/1")

	err := repo.Create(&Article{ID: "a2", SourceURL: "https://x/1", Title: "dup", Status: StatusNew})
	if err == nil {
		t.Fatal("expected unique constraint error for duplicate source URL")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unique") && !strings.Contains(strings.ToLower(err.Error()), "constraint") {
		t.Errorf("expected constraint violation, got: %v", err)
	}
}

func TestArticleRepository_StageTransitions(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	createTestArticle(t, repo, "a1", "https://x/1")

	if err := repo.UpdateScraped("a1", "Title", "Lead", "<p>body</p>", "https://x/img.jpg"); err != nil {
		t.Fatalf("update scraped failed: %v", err)
	}

	a, _ := repo.GetByID("a1")
	if a.Status != StatusScraped {
		t.Errorf("expected SCRAPED, got %s", a.Status)
	}
	if a.Title != "Title" || a.Lead != "Lead" || a.ContentHTML != "<p>body</p>" {
		t.Errorf("scraped fields not persisted: %+v", a)
	}

	if err := repo.UpdateUploaded("a1", "https://cms/edit/42"); err != nil {
		t.Fatalf("update uploaded failed: %v", err)
	}

	a, _ = repo.GetByID("a1")
	if a.Status != StatusUploaded {
		t.Errorf("expected UPLOADED, got %s", a.Status)
	}
	if a.CMSEditURL != "https://cms/edit/42" {
		t.Errorf("edit URL not persisted: %s", a.CMSEditURL)
	}

	if err := repo.SetStatus("a1", StatusPublished); err != nil {
		t.Fatalf("set status failed: %v", err)
	}

	a, _ = repo.GetByID("a1")
	if a.Status != StatusPublished {
		t.Errorf("expected PUBLISHED, got %s", a.Status)
	}
	if !a.Status.Terminal() {
		t.Error("PUBLISHED should be terminal")
	}
}

func TestStatus_Terminal(t *testing.T) {
	terminal := []Status{StatusPublished, StatusFailed, StatusDeleted}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	active := []Status{StatusNew, StatusScraped, StatusUploaded}
	for _, s := range active {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestArticleRepository_CountByStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)

	createTestArticle(t, repo, "a1", "https://x/1")
	createTestArticle(t, repo, "a2", "https://x/2")
	createTestArticle(t, repo, "a3", "https://x/3")

	if err := repo.SetStatus("a3", StatusFailed); err != nil {
		t.Fatalf("set status failed: %v", err)
	}

	counts, err := repo.CountByStatus()
	if err != nil {
		t.Fatalf("count by status failed: %v", err)
	}
	if counts[StatusNew] != 2 {
		t.Errorf("expected 2 NEW articles, got %d", counts[StatusNew])
	}
	if counts[StatusFailed] != 1 {
		t.Errorf("expected 1 FAILED article, got %d", counts[StatusFailed])
	}
}
