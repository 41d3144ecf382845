package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/peyknews/peyk/app/api"
	"github.com/peyknews/peyk/app/cfg"
	"github.com/peyknews/peyk/app/cms"
	"github.com/peyknews/peyk/app/content"
	"github.com/peyknews/peyk/app/database"
	"github.com/peyknews/peyk/app/ingest"
	"github.com/peyknews/peyk/app/pipeline"
	"github.com/peyknews/peyk/app/profiles"
	"github.com/peyknews/peyk/app/scrape"
	"github.com/peyknews/peyk/app/telegram"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting peyk", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	articleRepo := database.NewArticleRepository(db)
	queueRepo := database.NewQueueRepository(db)
	stateRepo := database.NewStateRepository(db)
	credRepo := database.NewCredentialRepository(db)
	dedupRepo := database.NewDedupRepository(db)

	profilesCfg, err := profiles.Load(appCfg.ProfilesPath)
	if err != nil {
		slog.Error("Failed to load profiles", "path", appCfg.ProfilesPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Profiles loaded", "feeds", len(profilesCfg.Feeds), "profiles", len(profilesCfg.Profiles))

	blacklist, err := content.LoadBlacklist(appCfg.BlacklistPath)
	if err != nil {
		slog.Error("Failed to load blacklist", "path", appCfg.BlacklistPath, "error", err)
		os.Exit(1)
	}

	collaboratorTimeout := time.Duration(appCfg.CollaboratorTimeout) * time.Second

	browser := cms.NewBrowser()
	defer browser.Close()

	scrapeClient := scrape.NewClient(collaboratorTimeout)
	defer scrapeClient.Close()

	otpGate := cms.NewOTPGate()
	session := cms.NewSessionManager(browser, otpGate, stateRepo, credRepo,
		appCfg.CMSLoginURL, appCfg.CookiesPath, collaboratorTimeout)

	tgBot, err := telegram.NewBot(appCfg.TelegramToken, appCfg.TelegramChatID,
		stateRepo, credRepo, articleRepo, queueRepo, profilesCfg, blacklist, otpGate)
	if err != nil {
		slog.Error("Failed to start telegram bot", "error", err)
		os.Exit(1)
	}
	session.RequestCode = tgBot.RequestCode

	monitor := ingest.NewMonitor(profilesCfg.Feeds, articleRepo, queueRepo, dedupRepo,
		time.Duration(appCfg.RSSInterval)*time.Second, appCfg.DedupRetentionDays)

	scrapeWorker := &pipeline.Worker{
		Handler: &pipeline.ScrapeStage{
			Scraper:  scrapeClient,
			Cleaner:  content.NewCleaner(blacklist),
			Articles: articleRepo,
			Queue:    queueRepo,
			State:    stateRepo,
			Profiles: profilesCfg,
		},
		Queue:      queueRepo,
		Articles:   articleRepo,
		Retries:    appCfg.ScrapeRetries,
		RetryDelay: time.Second,
		IdleDelay:  time.Second,
	}

	uploadWorker := &pipeline.Worker{
		Handler: &pipeline.UploadStage{
			Session:  session,
			Uploader: cms.NewFormUploader(browser, appCfg.CMSAddURL, collaboratorTimeout),
			Articles: articleRepo,
			State:    stateRepo,
			Creds:    credRepo,
			Profiles: profilesCfg,
			Notifier: tgBot,
		},
		Queue:      queueRepo,
		Articles:   articleRepo,
		Retries:    appCfg.UploadRetries,
		RetryDelay: time.Second,
		IdleDelay:  time.Second,
	}

	publishWorker := &pipeline.Worker{
		Handler: &pipeline.PublishStage{
			Session:   session,
			Publisher: cms.NewFormPublisher(browser, collaboratorTimeout),
			Articles:  articleRepo,
		},
		Queue:      queueRepo,
		Articles:   articleRepo,
		Retries:    appCfg.PublishRetries,
		RetryDelay: time.Second,
		IdleDelay:  time.Second,
		PostDelay:  publishDelay(appCfg.PublishDelayMin, appCfg.PublishDelayMax),
	}

	controller := pipeline.NewController(stateRepo, []pipeline.Runnable{
		monitor, scrapeWorker, uploadWorker, publishWorker,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tgBot.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		controller.Run(ctx)
	}()

	apiHandler := api.NewHandler(articleRepo, queueRepo, stateRepo, appCfg.Version)
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(apiHandler, appCfg.APIAccessKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	wg.Wait()
	slog.Info("Shutdown complete")
}

// publishDelay spaces out publications so they do not look automated
// on the site.
func publishDelay(minSec, maxSec int) func() time.Duration {
	return func() time.Duration {
		spread := maxSec - minSec + 1
		return time.Duration(minSec+rand.Intn(spread)) * time.Second
	}
}
