package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peyknews/peyk/app/database"
)

const defaultListLimit = 50

type Handler struct {
	articles database.ArticleRepository
	queue    database.QueueRepository
	state    database.StateRepository
	version  string
}

func NewHandler(articles database.ArticleRepository, queue database.QueueRepository,
	state database.StateRepository, version string) *Handler {
	return &Handler{
		articles: articles,
		queue:    queue,
		state:    state,
		version:  version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	state, err := h.state.Get()
	if err != nil {
		slog.Error("Database error", "operation", "get_state", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"version":    h.version,
		"bot_status": state.BotStatus,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	counts, err := h.articles.CountByStatus()
	if err != nil {
		slog.Error("Database error", "operation", "count_articles", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	queues := gin.H{}
	for _, stage := range []database.Stage{database.StageScrape, database.StageUpload, database.StagePublish} {
		pending, err := h.queue.PendingCount(stage)
		if err != nil {
			slog.Error("Database error", "operation", "count_queue", "stage", stage, "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		queues[string(stage)] = pending
	}

	articles := gin.H{}
	for status, count := range counts {
		articles[string(status)] = count
	}

	state, err := h.state.Get()
	if err != nil {
		slog.Error("Database error", "operation", "get_state", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bot_status": state.BotStatus,
		"profile":    state.SelectedProfile,
		"queues":     queues,
		"articles":   articles,
	})
}

func (h *Handler) ListArticles(c *gin.Context) {
	status := database.Status(c.DefaultQuery("status", string(database.StatusUploaded)))

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	articles, err := h.articles.ListByStatus(status, limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_articles", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	items := make([]gin.H, 0, len(articles))
	for _, a := range articles {
		items = append(items, gin.H{
			"id":           a.ID,
			"source_url":   a.SourceURL,
			"title":        a.Title,
			"status":       a.Status,
			"cms_edit_url": a.CMSEditURL,
			"created_at":   a.CreatedAt.Format(time.RFC3339),
			"updated_at":   a.UpdatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"count":  len(items),
		"items":  items,
	})
}
