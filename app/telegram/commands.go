package telegram

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/peyknews/peyk/app/database"
)

func (b *Bot) cmdHelp() string {
	return strings.TrimSpace(`
ربات پیک - کنترل خط تولید خبر

/on - روشن کردن خط تولید
/off - خاموش کردن و پاک‌سازی صف‌ها
/status - وضعیت خط تولید
/adduser <user> <pass> - افزودن کاربر سایت
/user - انتخاب کاربر سایت
/profile - انتخاب پروفایل
/addurl <url> - افزودن دستی خبر
/blacklist <عبارت> - افزودن عبارت ممنوع

برای ورود به سایت، کد ۶ رقمی پیامک‌شده را مستقیم ارسال کنید.`)
}

func (b *Bot) cmdOn() (string, error) {
	if err := b.state.SetBotStatus(database.BotOn); err != nil {
		return "", fmt.Errorf("turn bot on: %w", err)
	}
	return "ربات روشن شد.", nil
}

// cmdOff stops the pipeline and clears all queues. Queued work is
// intentionally discarded: after an OFF the operator expects a clean
// slate, not a burst of stale articles on the next ON.
func (b *Bot) cmdOff() (string, error) {
	if err := b.state.SetBotStatus(database.BotOff); err != nil {
		return "", fmt.Errorf("turn bot off: %w", err)
	}
	if err := b.queue.Clear(); err != nil {
		return "", fmt.Errorf("clear queues: %w", err)
	}
	return "ربات خاموش شد و صف‌ها پاک شدند.", nil
}

func (b *Bot) cmdStatus() (string, error) {
	state, err := b.state.Get()
	if err != nil {
		return "", fmt.Errorf("load run state: %w", err)
	}

	counts, err := b.articles.CountByStatus()
	if err != nil {
		return "", fmt.Errorf("count articles: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "وضعیت ربات: %s\n", state.BotStatus)
	fmt.Fprintf(&sb, "پروفایل: %s\n", state.SelectedProfile)

	user := state.SelectedUser
	if user == "" {
		user = "انتخاب نشده"
	}
	fmt.Fprintf(&sb, "کاربر سایت: %s\n", user)

	sb.WriteString("\nصف‌ها:\n")
	for _, stage := range []database.Stage{database.StageScrape, database.StageUpload, database.StagePublish} {
		pending, err := b.queue.PendingCount(stage)
		if err != nil {
			return "", fmt.Errorf("count queue %s: %w", stage, err)
		}
		fmt.Fprintf(&sb, "  %s: %d\n", stage, pending)
	}

	sb.WriteString("\nخبرها:\n")
	for _, status := range []database.Status{
		database.StatusNew, database.StatusScraped, database.StatusUploaded,
		database.StatusPublished, database.StatusFailed, database.StatusDeleted,
	} {
		if counts[status] > 0 {
			fmt.Fprintf(&sb, "  %s: %d\n", status, counts[status])
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// cmdAddUser stores a CMS credential. The first stored user becomes the
// selected one so uploads can start without an extra /user step.
func (b *Bot) cmdAddUser(args string) (string, error) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return "استفاده: /adduser <user> <pass>", nil
	}

	username, password := parts[0], parts[1]

	if err := b.creds.Upsert(username, password); err != nil {
		return "", fmt.Errorf("store credential: %w", err)
	}

	state, err := b.state.Get()
	if err != nil {
		return "", fmt.Errorf("load run state: %w", err)
	}
	if state.SelectedUser == "" {
		if err := b.state.SetSelectedUser(username); err != nil {
			return "", fmt.Errorf("select user: %w", err)
		}
		return fmt.Sprintf("کاربر %s ذخیره و انتخاب شد.", username), nil
	}

	return fmt.Sprintf("کاربر %s ذخیره شد.", username), nil
}

// cmdAddURL pushes a single article into the pipeline ahead of the
// feed-sourced ones.
func (b *Bot) cmdAddURL(args string) (string, error) {
	if args == "" {
		return "استفاده: /addurl <url>", nil
	}

	parsed, err := url.Parse(args)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "نشانی نامعتبر است.", nil
	}

	existing, err := b.articles.GetBySourceURL(args)
	if err != nil {
		return "", fmt.Errorf("look up article: %w", err)
	}
	if existing != nil {
		return fmt.Sprintf("این خبر قبلا ثبت شده است (وضعیت: %s).", existing.Status), nil
	}

	article := &database.Article{
		ID:        uuid.NewString(),
		SourceURL: args,
		Status:    database.StatusNew,
	}
	if err := b.articles.Create(article); err != nil {
		return "", fmt.Errorf("create article: %w", err)
	}
	if err := b.queue.Enqueue(article.ID, database.StageScrape, database.ManualPriority); err != nil {
		return "", fmt.Errorf("enqueue scrape: %w", err)
	}

	return "خبر با اولویت بالا به صف اضافه شد.", nil
}

func (b *Bot) cmdBlacklist(args string) (string, error) {
	if args == "" {
		phrases := b.blacklist.Phrases()
		if len(phrases) == 0 {
			return "فهرست عبارات ممنوع خالی است.", nil
		}
		return "عبارات ممنوع:\n" + strings.Join(phrases, "\n"), nil
	}

	if err := b.blacklist.AddPhrase(args); err != nil {
		return "", fmt.Errorf("add blacklist phrase: %w", err)
	}
	return "عبارت به فهرست ممنوع اضافه شد.", nil
}
