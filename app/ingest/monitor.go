package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/peyknews/peyk/app/database"
)

// Monitor polls the configured RSS feeds and enqueues unseen items for
// scraping. It is the only producer of SCRAPE queue entries besides the
// operator's manual URL submissions.
type Monitor struct {
	parser        *gofeed.Parser
	feeds         []string
	articles      database.ArticleRepository
	queue         database.QueueRepository
	dedup         database.DedupRepository
	interval      time.Duration
	retentionDays int
}

func NewMonitor(feeds []string, articles database.ArticleRepository, queue database.QueueRepository,
	dedup database.DedupRepository, interval time.Duration, retentionDays int) *Monitor {
	return &Monitor{
		parser:        gofeed.NewParser(),
		feeds:         feeds,
		articles:      articles,
		queue:         queue,
		dedup:         dedup,
		interval:      interval,
		retentionDays: retentionDays,
	}
}

// Run polls all feeds at the configured interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	slog.Info("Feed monitor started", "feeds", len(m.feeds), "interval", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.CheckOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Feed monitor stopped")
			return
		case <-ticker.C:
			m.CheckOnce(ctx)
		}
	}
}

// CheckOnce runs a single pass over every configured feed. A failing
// feed is logged and skipped; it never aborts the pass.
func (m *Monitor) CheckOnce(ctx context.Context) {
	for _, feedURL := range m.feeds {
		if ctx.Err() != nil {
			return
		}
		if err := m.checkFeed(ctx, feedURL); err != nil {
			slog.Error("Feed check failed", "feed", feedURL, "error", err)
		}
	}

	m.pruneDedup()
}

func (m *Monitor) checkFeed(ctx context.Context, feedURL string) error {
	feed, err := m.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return err
	}

	for _, item := range feed.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}

		hash := DedupHash(item.Link, item.Title)

		isNew, err := m.dedup.IsNewAndRecord(hash)
		if err != nil {
			slog.Error("Dedup check failed", "link", item.Link, "error", err)
			continue
		}
		if !isNew {
			continue
		}

		if err := m.admit(item.Link, item.Title); err != nil {
			slog.Error("Failed to admit feed item", "link", item.Link, "error", err)
			// Forget the hash again or the item would be lost for good.
			if err := m.dedup.Delete(hash); err != nil {
				slog.Error("Dedup rollback failed", "link", item.Link, "error", err)
			}
		}
	}

	return nil
}

// admit creates the article record and queues it for scraping.
func (m *Monitor) admit(link, title string) error {
	article := &database.Article{
		ID:        uuid.NewString(),
		SourceURL: link,
		Title:     title,
		Status:    database.StatusNew,
	}

	if err := m.articles.Create(article); err != nil {
		return err
	}
	if err := m.queue.Enqueue(article.ID, database.StageScrape, database.DefaultPriority); err != nil {
		return err
	}

	slog.Info("New article queued for scraping", "article_id", article.ID, "title", title)

	return nil
}

func (m *Monitor) pruneDedup() {
	if m.retentionDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -m.retentionDays)
	deleted, err := m.dedup.DeleteOlderThan(cutoff)
	if err != nil {
		slog.Error("Dedup pruning failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Debug("Pruned dedup hashes", "deleted", deleted)
	}
}
