package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/peyknews/peyk/app/database"
)

// Outcome tells the worker what to do with a queue entry after its
// handler ran without error.
type Outcome int

const (
	// Done means the handler completed and advanced the article.
	Done Outcome = iota
	// Defer means a precondition is not met (e.g. no CMS user is
	// selected). The pop is discarded without failing the article; the
	// work waits for a later re-enqueue or manual trigger.
	Defer
)

// StageHandler performs the actual work of one pipeline stage.
type StageHandler interface {
	Stage() database.Stage
	Handle(ctx context.Context, article *database.Article) (Outcome, error)
}

// Worker drains one stage queue. Each popped entry gets up to Retries
// handler attempts; exhaustion marks the article FAILED and drops the
// entry. Workers only run while the bot is ON, the controller starts
// and stops them.
type Worker struct {
	Handler  StageHandler
	Queue    database.QueueRepository
	Articles database.ArticleRepository

	Retries    int
	RetryDelay time.Duration
	IdleDelay  time.Duration

	// PostDelay, when set, is waited after every processed entry. The
	// publish worker uses it to space out CMS publications.
	PostDelay func() time.Duration
}

func (w *Worker) Run(ctx context.Context) {
	stage := w.Handler.Stage()
	slog.Info("Stage worker started", "stage", stage)

	for {
		if ctx.Err() != nil {
			slog.Info("Stage worker stopped", "stage", stage)
			return
		}

		processed := w.runOnce(ctx)

		switch {
		case !processed:
			sleep(ctx, w.IdleDelay)
		case w.PostDelay != nil:
			sleep(ctx, w.PostDelay())
		}
	}
}

// runOnce pops and processes a single queue entry. It reports whether
// an entry was consumed.
func (w *Worker) runOnce(ctx context.Context) bool {
	stage := w.Handler.Stage()

	entry, err := w.Queue.Pop(stage)
	if err != nil {
		slog.Error("Queue pop failed", "stage", stage, "error", err)
		return false
	}
	if entry == nil {
		return false
	}

	article, err := w.Articles.GetByID(entry.ArticleID)
	if err != nil {
		slog.Error("Article lookup failed", "stage", stage, "article_id", entry.ArticleID, "error", err)
		return true
	}
	if article == nil || article.Status.Terminal() {
		// Stale entry, e.g. the operator deleted the article while it
		// was queued.
		return true
	}

	var lastErr error
	for attempt := 1; attempt <= w.Retries; attempt++ {
		if ctx.Err() != nil {
			// Shutting down mid-entry: requeue so no work is lost.
			w.requeue(entry)
			return true
		}

		outcome, err := w.Handler.Handle(ctx, article)
		if err == nil {
			if outcome == Defer {
				slog.Debug("Stage precondition not met, skipping entry",
					"stage", stage, "article_id", article.ID)
			}
			return true
		}

		lastErr = err
		slog.Warn("Stage attempt failed",
			"stage", stage, "article_id", article.ID, "attempt", attempt, "error", err)

		if attempt < w.Retries {
			sleep(ctx, w.RetryDelay)
		}
	}

	slog.Error("Stage retries exhausted, marking article failed",
		"stage", stage, "article_id", article.ID, "error", lastErr)

	if err := w.Articles.SetStatus(article.ID, database.StatusFailed); err != nil {
		slog.Error("Failed to mark article failed", "article_id", article.ID, "error", err)
	}

	return true
}

func (w *Worker) requeue(entry *database.QueueEntry) {
	if err := w.Queue.Enqueue(entry.ArticleID, entry.Stage, entry.Priority); err != nil {
		slog.Error("Requeue failed", "stage", entry.Stage, "article_id", entry.ArticleID, "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
