package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage paths
	DBPath        string `long:"db-path" env:"DB_PATH" default:"./peyk.db" description:"Path to the sqlite database file"`
	ProfilesPath  string `long:"profiles-path" env:"PROFILES_PATH" default:"./profiles.yml" description:"YAML file with feed sources and CMS profiles"`
	BlacklistPath string `long:"blacklist-path" env:"BLACKLIST_PATH" default:"./blacklist.txt" description:"File holding blacklisted phrases, one per line"`
	CookiesPath   string `long:"cookies-path" env:"COOKIES_PATH" default:"./cms_cookies.json" description:"File where CMS session cookies are persisted"`

	// Telegram control
	TelegramToken  string `long:"telegram-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token; empty disables remote control"`
	TelegramChatID int64  `long:"telegram-chat-id" env:"TELEGRAM_ALLOWED_CHAT_ID" description:"Only this chat may issue commands and receives notifications"`

	// CMS endpoints
	CMSLoginURL string `long:"cms-login-url" env:"CMS_LOGIN_URL" default:"https://www.didbaniran.ir/admin-start-GeHid0Greph" description:"CMS admin login page"`
	CMSAddURL   string `long:"cms-add-url" env:"CMS_ADD_URL" default:"https://www.didbaniran.ir/fa/admin/newsstudios/add/" description:"CMS add-news form page"`

	// Pipeline tuning
	RSSInterval         int `long:"rss-interval" env:"RSS_INTERVAL" default:"120" description:"Feed polling interval in seconds"`
	ScrapeRetries       int `long:"scrape-retries" env:"SCRAPE_RETRIES" default:"3" description:"Attempts per article in the scrape stage"`
	UploadRetries       int `long:"upload-retries" env:"UPLOAD_RETRIES" default:"3" description:"Attempts per article in the upload stage"`
	PublishRetries      int `long:"publish-retries" env:"PUBLISH_RETRIES" default:"3" description:"Attempts per article in the publish stage"`
	CollaboratorTimeout int `long:"collaborator-timeout" env:"COLLABORATOR_TIMEOUT" default:"60" description:"Per-call timeout for browser collaborators in seconds"`
	PublishDelayMin     int `long:"publish-delay-min" env:"PUBLISH_DELAY_MIN" default:"120" description:"Minimum pause after each publish execution in seconds"`
	PublishDelayMax     int `long:"publish-delay-max" env:"PUBLISH_DELAY_MAX" default:"240" description:"Maximum pause after each publish execution in seconds"`
	DedupRetentionDays  int `long:"dedup-retention-days" env:"DEDUP_RETENTION_DAYS" default:"90" description:"Days to keep dedup hashes; 0 keeps them forever"`

	// HTTP status API
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP status API port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"Access key for the article listing endpoint (optional)"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:              raw.DBPath,
		ProfilesPath:        raw.ProfilesPath,
		BlacklistPath:       raw.BlacklistPath,
		CookiesPath:         raw.CookiesPath,
		TelegramToken:       raw.TelegramToken,
		TelegramChatID:      raw.TelegramChatID,
		CMSLoginURL:         raw.CMSLoginURL,
		CMSAddURL:           raw.CMSAddURL,
		RSSInterval:         raw.RSSInterval,
		ScrapeRetries:       raw.ScrapeRetries,
		UploadRetries:       raw.UploadRetries,
		PublishRetries:      raw.PublishRetries,
		CollaboratorTimeout: raw.CollaboratorTimeout,
		PublishDelayMin:     raw.PublishDelayMin,
		PublishDelayMax:     raw.PublishDelayMax,
		DedupRetentionDays:  raw.DedupRetentionDays,
		Port:                raw.Port,
		APIAccessKey:        raw.APIAccessKey,
		Debug:               raw.Debug,
		Version:             GetVersion(),
	}

	if cfg.PublishDelayMax < cfg.PublishDelayMin {
		return nil, fmt.Errorf("publish-delay-max (%d) must not be below publish-delay-min (%d)",
			cfg.PublishDelayMax, cfg.PublishDelayMin)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
