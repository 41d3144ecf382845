package database

import (
	"time"
)

// ArticleRepository persists articles and drives their status field.
// Articles are never physically deleted; DELETED is a status.
type ArticleRepository interface {
	Create(a *Article) error
	GetByID(id string) (*Article, error)
	GetBySourceURL(url string) (*Article, error)
	UpdateScraped(id, title, lead, contentHTML, imageURL string) error
	UpdateUploaded(id, editURL string) error
	SetStatus(id string, status Status) error
	ListByStatus(status Status, limit int) ([]Article, error)
	CountByStatus() (map[Status]int, error)
}

// QueueRepository is the per-stage work list. Enqueue of an already
// pending (article, stage) pair is a silent no-op; Pop removes and
// returns the lowest-priority, earliest-created entry atomically.
type QueueRepository interface {
	Enqueue(articleID string, stage Stage, priority int) error
	Pop(stage Stage) (*QueueEntry, error)
	Clear() error
	PendingCount(stage Stage) (int, error)
}

// StateRepository reads and mutates the singleton run state record.
type StateRepository interface {
	Get() (*RunState, error)
	SetBotStatus(status string) error
	SetProfile(profile string) error
	SetSelectedUser(username string) error
	SetLastLoginDate(date string) error
}

type CredentialRepository interface {
	Upsert(username, password string) error
	Get(username string) (*Credential, error)
	List() ([]Credential, error)
}

// DedupRepository is the content-hash index used to suppress duplicate
// ingestion. IsNewAndRecord must be atomic: of any number of callers
// presenting the same hash, exactly one is told "new".
type DedupRepository interface {
	IsNewAndRecord(hash string) (bool, error)
	Delete(hash string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
