package telegram

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/peyknews/peyk/app/database"
)

func reviewKeyboard(articleID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("انتشار", "publish:"+articleID),
			tgbotapi.NewInlineKeyboardButtonData("حذف", "delete:"+articleID),
		),
	)
}

func userKeyboard(creds []database.Credential) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(creds))
	for _, c := range creds {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Username, "userselect:"+c.Username),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func profileKeyboard(names []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(names))
	for _, name := range names {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(name, "profile:"+name),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.Message.Chat.ID != b.chatID {
		return
	}

	action, arg, _ := strings.Cut(query.Data, ":")

	var response string
	var err error

	switch action {
	case "userselect":
		response, err = b.selectUser(arg)
	case "profile":
		response, err = b.selectProfile(arg)
	case "publish":
		response, err = b.approvePublish(arg)
	case "delete":
		response, err = b.deleteArticle(arg)
	default:
		response = "دکمه ناشناخته."
	}

	if err != nil {
		slog.Error("Callback failed", "action", action, "error", err)
		response = "خطا: " + err.Error()
	}

	if b.api != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
			slog.Error("Failed to acknowledge callback", "error", err)
		}
	}
	if err := b.send(response, nil); err != nil {
		slog.Error("Failed to send callback response", "error", err)
	}
}

func (b *Bot) selectUser(username string) (string, error) {
	cred, err := b.creds.Get(username)
	if err != nil {
		return "", fmt.Errorf("look up credential: %w", err)
	}
	if cred == nil {
		return "چنین کاربری ثبت نشده است.", nil
	}

	if err := b.state.SetSelectedUser(username); err != nil {
		return "", fmt.Errorf("select user: %w", err)
	}
	return fmt.Sprintf("کاربر %s انتخاب شد.", username), nil
}

func (b *Bot) selectProfile(name string) (string, error) {
	if _, ok := b.profiles.Profiles[name]; !ok {
		return "چنین پروفایلی وجود ندارد.", nil
	}

	if err := b.state.SetProfile(name); err != nil {
		return "", fmt.Errorf("select profile: %w", err)
	}
	return fmt.Sprintf("پروفایل %s انتخاب شد.", name), nil
}

// approvePublish is the only path onto the publish queue. Approvals run
// at manual priority so they beat freshly scraped work.
func (b *Bot) approvePublish(articleID string) (string, error) {
	article, err := b.articles.GetByID(articleID)
	if err != nil {
		return "", fmt.Errorf("look up article: %w", err)
	}
	if article == nil {
		return "خبر پیدا نشد.", nil
	}
	if article.Status != database.StatusUploaded {
		return fmt.Sprintf("این خبر قابل انتشار نیست (وضعیت: %s).", article.Status), nil
	}

	if err := b.queue.Enqueue(articleID, database.StagePublish, database.ManualPriority); err != nil {
		return "", fmt.Errorf("enqueue publish: %w", err)
	}
	return "خبر در صف انتشار قرار گرفت.", nil
}

// deleteArticle retires a draft the operator rejected. Only uploaded
// drafts can be deleted; published articles stay published.
func (b *Bot) deleteArticle(articleID string) (string, error) {
	article, err := b.articles.GetByID(articleID)
	if err != nil {
		return "", fmt.Errorf("look up article: %w", err)
	}
	if article == nil {
		return "خبر پیدا نشد.", nil
	}
	if article.Status != database.StatusUploaded {
		return fmt.Sprintf("فقط پیش‌نویس بارگذاری‌شده قابل حذف است (وضعیت: %s).", article.Status), nil
	}

	if err := b.articles.SetStatus(articleID, database.StatusDeleted); err != nil {
		return "", fmt.Errorf("mark deleted: %w", err)
	}
	return "خبر حذف شد.", nil
}
