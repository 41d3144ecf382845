package pipeline

import (
	"context"
	"time"

	"github.com/peyknews/peyk/app/database"
)

// ScrapedArticle is what the browser collaborator extracts from a
// source page before cleaning.
type ScrapedArticle struct {
	Title    string
	Lead     string
	BodyHTML string
	ImageURL string
}

// Scraper fetches a fully rendered article page.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*ScrapedArticle, error)
}

// UploadPayload is the material the uploader pastes into the CMS
// add-news form.
type UploadPayload struct {
	Title    string
	Lead     string
	BodyHTML string
	ImageURL string
	Category string
}

// Uploader drives the CMS add-news form and returns the edit URL of
// the created draft.
type Uploader interface {
	Upload(ctx context.Context, payload UploadPayload) (string, error)
}

// Publisher schedules a previously uploaded draft for publication at
// publishedAt via the CMS edit form.
type Publisher interface {
	Publish(ctx context.Context, editURL string, publishedAt time.Time) error
}

// Session guards CMS access: EnsureLogin must be called before any
// uploader or publisher work and is expected to be cheap when a valid
// session already exists.
type Session interface {
	EnsureLogin(ctx context.Context) error
}

// Notifier tells the operator about articles awaiting review. A nil
// notifier is valid; the pipeline then runs unattended except that
// nothing ever reaches the publish stage.
type Notifier interface {
	NotifyUploaded(article *database.Article) error
}

// Cleaner sanitizes scraped HTML before storage.
type Cleaner interface {
	Clean(rawHTML string) (string, error)
}
