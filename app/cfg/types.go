package cfg

type Cfg struct {
	// Storage paths
	DBPath        string
	ProfilesPath  string
	BlacklistPath string
	CookiesPath   string

	// Telegram control
	TelegramToken  string
	TelegramChatID int64

	// CMS endpoints
	CMSLoginURL string
	CMSAddURL   string

	// Pipeline tuning
	RSSInterval         int
	ScrapeRetries       int
	UploadRetries       int
	PublishRetries      int
	CollaboratorTimeout int
	PublishDelayMin     int
	PublishDelayMax     int
	DedupRetentionDays  int

	// HTTP status API
	Port         string
	APIAccessKey string

	// Application metadata
	Debug   bool
	Version string
}
