package database

import (
	"time"
)

// Status is the authoritative lifecycle state of an article. Transitions
// follow NEW -> SCRAPED -> UPLOADED -> PUBLISHED; FAILED is reached from
// any in-progress state after retry exhaustion and DELETED from UPLOADED
// by operator action.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusScraped   Status = "SCRAPED"
	StatusUploaded  Status = "UPLOADED"
	StatusPublished Status = "PUBLISHED"
	StatusFailed    Status = "FAILED"
	StatusDeleted   Status = "DELETED"
)

// Terminal reports whether no stage worker may act on the article anymore.
func (s Status) Terminal() bool {
	return s == StatusPublished || s == StatusFailed || s == StatusDeleted
}

// Stage identifies a pipeline step with its own queue and worker.
type Stage string

const (
	StageScrape  Stage = "SCRAPE"
	StageUpload  Stage = "UPLOAD"
	StagePublish Stage = "PUBLISH"
)

const (
	// DefaultPriority is assigned to entries created by the ingestion
	// monitor and by stage workers. Lower values are served first.
	DefaultPriority = 100
	// ManualPriority is assigned to operator-triggered enqueues.
	ManualPriority = 1
)

const (
	BotOn  = "ON"
	BotOff = "OFF"
)

type Article struct {
	ID          string
	SourceURL   string
	Title       string
	Lead        string
	ContentHTML string
	ImageURL    string
	Category    string
	Status      Status
	CMSEditURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type QueueEntry struct {
	ID        int64
	ArticleID string
	Stage     Stage
	Priority  int
	CreatedAt time.Time
}

// RunState is the singleton control record. Empty SelectedUser means no
// operator credential is in effect; LastLoginDate holds the ISO date
// ("2006-01-02") of the last successful CMS login, empty if never.
type RunState struct {
	BotStatus       string
	SelectedProfile string
	SelectedUser    string
	LastLoginDate   string
}

type Credential struct {
	Username  string
	Password  string
	CreatedAt time.Time
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
