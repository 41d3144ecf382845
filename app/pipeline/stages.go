package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peyknews/peyk/app/content"
	"github.com/peyknews/peyk/app/database"
	"github.com/peyknews/peyk/app/jalali"
	"github.com/peyknews/peyk/app/profiles"
)

const leadMaxRunes = 300

// ScrapeStage fetches the source page, cleans it and stores the result
// with the selected profile's attribution prefix already applied.
type ScrapeStage struct {
	Scraper  Scraper
	Cleaner  Cleaner
	Articles database.ArticleRepository
	Queue    database.QueueRepository
	State    database.StateRepository
	Profiles *profiles.Config
}

func (s *ScrapeStage) Stage() database.Stage { return database.StageScrape }

func (s *ScrapeStage) Handle(ctx context.Context, article *database.Article) (Outcome, error) {
	scraped, err := s.Scraper.Scrape(ctx, article.SourceURL)
	if err != nil {
		return Done, fmt.Errorf("scrape %s: %w", article.SourceURL, err)
	}

	cleaned, err := s.Cleaner.Clean(scraped.BodyHTML)
	if err != nil {
		return Done, fmt.Errorf("clean %s: %w", article.SourceURL, err)
	}

	title := scraped.Title
	if title == "" {
		title = article.Title
	}

	lead := scraped.Lead
	if lead == "" {
		lead = content.Summarize(cleaned, leadMaxRunes)
	}

	state, err := s.State.Get()
	if err != nil {
		return Done, fmt.Errorf("load run state: %w", err)
	}
	profile := s.Profiles.Get(state.SelectedProfile)
	body := profile.Prefix + cleaned

	if err := s.Articles.UpdateScraped(article.ID, title, lead, body, scraped.ImageURL); err != nil {
		return Done, fmt.Errorf("store scraped article: %w", err)
	}
	if err := s.Queue.Enqueue(article.ID, database.StageUpload, database.DefaultPriority); err != nil {
		return Done, fmt.Errorf("enqueue upload: %w", err)
	}

	return Done, nil
}

// UploadStage pushes a scraped article into the CMS as a draft and
// notifies the operator. It never schedules publication itself: that
// only happens when the operator approves the draft.
type UploadStage struct {
	Session  Session
	Uploader Uploader
	Articles database.ArticleRepository
	State    database.StateRepository
	Creds    database.CredentialRepository
	Profiles *profiles.Config
	Notifier Notifier
}

func (s *UploadStage) Stage() database.Stage { return database.StageUpload }

func (s *UploadStage) Handle(ctx context.Context, article *database.Article) (Outcome, error) {
	state, err := s.State.Get()
	if err != nil {
		return Done, fmt.Errorf("load run state: %w", err)
	}

	// Without a selected CMS user uploads cannot proceed; the entry
	// waits until the operator picks one.
	if state.SelectedUser == "" {
		return Defer, nil
	}
	cred, err := s.Creds.Get(state.SelectedUser)
	if err != nil {
		return Done, fmt.Errorf("load credential: %w", err)
	}
	if cred == nil {
		slog.Warn("Selected CMS user has no stored credential", "user", state.SelectedUser)
		return Defer, nil
	}

	if err := s.Session.EnsureLogin(ctx); err != nil {
		return Done, fmt.Errorf("cms login: %w", err)
	}

	profile := s.Profiles.Get(state.SelectedProfile)

	category := article.Category
	if category == "" {
		category = profile.Category
	}

	editURL, err := s.Uploader.Upload(ctx, UploadPayload{
		Title:    article.Title,
		Lead:     article.Lead,
		BodyHTML: article.ContentHTML,
		ImageURL: article.ImageURL,
		Category: category,
	})
	if err != nil {
		return Done, fmt.Errorf("cms upload: %w", err)
	}

	if err := s.Articles.UpdateUploaded(article.ID, editURL); err != nil {
		return Done, fmt.Errorf("store edit url: %w", err)
	}

	if s.Notifier != nil {
		article.Status = database.StatusUploaded
		article.CMSEditURL = editURL
		if err := s.Notifier.NotifyUploaded(article); err != nil {
			slog.Error("Upload notification failed", "article_id", article.ID, "error", err)
		}
	}

	return Done, nil
}

// PublishStage schedules an approved draft for publication.
type PublishStage struct {
	Session   Session
	Publisher Publisher
	Articles  database.ArticleRepository
}

func (s *PublishStage) Stage() database.Stage { return database.StagePublish }

func (s *PublishStage) Handle(ctx context.Context, article *database.Article) (Outcome, error) {
	// No recorded edit location means there is no draft to publish yet;
	// skip without failing the article.
	if article.CMSEditURL == "" {
		slog.Warn("Article has no edit URL, skipping publish", "article_id", article.ID)
		return Defer, nil
	}

	if err := s.Session.EnsureLogin(ctx); err != nil {
		return Done, fmt.Errorf("cms login: %w", err)
	}

	if err := s.Publisher.Publish(ctx, article.CMSEditURL, jalali.NowTehran()); err != nil {
		return Done, fmt.Errorf("cms publish: %w", err)
	}

	if err := s.Articles.SetStatus(article.ID, database.StatusPublished); err != nil {
		return Done, fmt.Errorf("mark published: %w", err)
	}

	slog.Info("Article published", "article_id", article.ID, "edit_url", article.CMSEditURL)

	return Done, nil
}
