package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ ArticleRepository = (*articleRepository)(nil)

type articleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(a *Article) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	if a.Status == "" {
		a.Status = StatusNew
	}

	_, err := r.db.Exec(`
		INSERT INTO articles (id, source_url, title, lead, content_html, image_url, category, status, cms_edit_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.SourceURL, a.Title, a.Lead, a.ContentHTML, a.ImageURL, a.Category, string(a.Status), a.CMSEditURL,
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

const articleColumns = `id, source_url, title, lead, content_html, image_url, category, status, cms_edit_url, created_at, updated_at`

func (r *articleRepository) scanArticle(row *sql.Row) (*Article, error) {
	var a Article
	var status, createdAt, updatedAt string

	err := row.Scan(&a.ID, &a.SourceURL, &a.Title, &a.Lead, &a.ContentHTML, &a.ImageURL,
		&a.Category, &status, &a.CMSEditURL, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan article row: %w", err)
	}

	a.Status = Status(status)
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	return &a, nil
}

func (r *articleRepository) GetByID(id string) (*Article, error) {
	row := r.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	return r.scanArticle(row)
}

func (r *articleRepository) GetBySourceURL(url string) (*Article, error) {
	row := r.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE source_url = ?`, url)
	return r.scanArticle(row)
}

func (r *articleRepository) UpdateScraped(id, title, lead, contentHTML, imageURL string) error {
	_, err := r.db.Exec(`
		UPDATE articles
		SET title = ?, lead = ?, content_html = ?, image_url = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, title, lead, contentHTML, imageURL, string(StatusScraped), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to update scraped article: %w", err)
	}

	return nil
}

func (r *articleRepository) UpdateUploaded(id, editURL string) error {
	_, err := r.db.Exec(`
		UPDATE articles
		SET cms_edit_url = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, editURL, string(StatusUploaded), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to update uploaded article: %w", err)
	}

	return nil
}

func (r *articleRepository) SetStatus(id string, status Status) error {
	_, err := r.db.Exec(`
		UPDATE articles SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to set article status: %w", err)
	}

	return nil
}

func (r *articleRepository) ListByStatus(status Status, limit int) ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE status = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		var st, createdAt, updatedAt string
		err := rows.Scan(&a.ID, &a.SourceURL, &a.Title, &a.Lead, &a.ContentHTML, &a.ImageURL,
			&a.Category, &st, &a.CMSEditURL, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		a.Status = Status(st)
		a.CreatedAt = parseTime(createdAt)
		a.UpdatedAt = parseTime(updatedAt)
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func (r *articleRepository) CountByStatus() (map[Status]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM articles GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[Status(status)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count rows: %w", err)
	}

	return counts, nil
}
