package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/peyknews/peyk/app/cms"
	"github.com/peyknews/peyk/app/content"
	"github.com/peyknews/peyk/app/database"
	"github.com/peyknews/peyk/app/profiles"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// Bot is the operator's remote control. All pipeline decisions that
// need a human (turning the bot on, picking a CMS user, approving a
// draft, relaying the login code) flow through one Telegram chat.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64

	state     database.StateRepository
	creds     database.CredentialRepository
	articles  database.ArticleRepository
	queue     database.QueueRepository
	profiles  *profiles.Config
	blacklist *content.Blacklist
	otp       *cms.OTPGate
}

// NewBot connects to Telegram. An empty token yields a disabled bot:
// notifications become no-ops and Run returns immediately, which keeps
// local development possible without a bot account.
func NewBot(token string, chatID int64, state database.StateRepository, creds database.CredentialRepository,
	articles database.ArticleRepository, queue database.QueueRepository,
	profilesCfg *profiles.Config, blacklist *content.Blacklist, otp *cms.OTPGate) (*Bot, error) {

	bot := &Bot{
		chatID:    chatID,
		state:     state,
		creds:     creds,
		articles:  articles,
		queue:     queue,
		profiles:  profilesCfg,
		blacklist: blacklist,
		otp:       otp,
	}

	if token == "" {
		slog.Warn("Telegram token empty, remote control disabled")
		return bot, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	bot.api = api

	slog.Info("Telegram bot authorized", "username", api.Self.UserName)

	return bot, nil
}

// Run consumes updates until ctx is done. The bot stays responsive
// while the pipeline is OFF: that is how it gets turned back ON.
func (b *Bot) Run(ctx context.Context) {
	if b.api == nil {
		return
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.Chat.ID != b.chatID {
		slog.Warn("Ignoring message from unauthorized chat", "chat_id", message.Chat.ID)
		return
	}

	text := strings.TrimSpace(message.Text)

	if otpPattern.MatchString(text) {
		b.reply(message, b.submitOTP(text))
		return
	}

	command, args, _ := strings.Cut(text, " ")
	args = strings.TrimSpace(args)

	var response string
	var err error

	switch command {
	case "/start", "/help":
		response = b.cmdHelp()
	case "/on":
		response, err = b.cmdOn()
	case "/off":
		response, err = b.cmdOff()
	case "/status":
		response, err = b.cmdStatus()
	case "/adduser":
		response, err = b.cmdAddUser(args)
	case "/user":
		b.sendUserPicker(message)
		return
	case "/profile":
		b.sendProfilePicker(message)
		return
	case "/addurl":
		response, err = b.cmdAddURL(args)
	case "/blacklist":
		response, err = b.cmdBlacklist(args)
	default:
		response = "دستور ناشناخته. /help را ببینید."
	}

	if err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		response = "خطا: " + err.Error()
	}

	b.reply(message, response)
}

func (b *Bot) reply(message *tgbotapi.Message, text string) {
	if b.api == nil || text == "" {
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Failed to send reply", "error", err)
	}
}

func (b *Bot) send(text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	if b.api == nil {
		return nil
	}

	msg := tgbotapi.NewMessage(b.chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// NotifyUploaded tells the operator a draft is ready and offers the
// publish/delete decision inline.
func (b *Bot) NotifyUploaded(article *database.Article) error {
	text := fmt.Sprintf("خبر در سایت بارگذاری شد:\n%s\n\nپیش‌نویس: %s", article.Title, article.CMSEditURL)
	keyboard := reviewKeyboard(article.ID)
	return b.send(text, &keyboard)
}

// RequestCode asks the operator for the 6-digit login code.
func (b *Bot) RequestCode() error {
	return b.send("کد ورود ۶ رقمی پیامک‌شده را ارسال کنید.", nil)
}

func (b *Bot) submitOTP(code string) string {
	if b.otp.Submit(code) {
		return "کد دریافت شد."
	}
	return "در حال حاضر ورودی در انتظار کد نیست."
}

func (b *Bot) sendUserPicker(message *tgbotapi.Message) {
	creds, err := b.creds.List()
	if err != nil {
		b.reply(message, "خطا: "+err.Error())
		return
	}
	if len(creds) == 0 {
		b.reply(message, "هیچ کاربری ثبت نشده است. با /adduser اضافه کنید.")
		return
	}

	keyboard := userKeyboard(creds)
	if err := b.send("کاربر سایت را انتخاب کنید:", &keyboard); err != nil {
		slog.Error("Failed to send user picker", "error", err)
	}
}

func (b *Bot) sendProfilePicker(message *tgbotapi.Message) {
	state, err := b.state.Get()
	if err != nil {
		b.reply(message, "خطا: "+err.Error())
		return
	}

	keyboard := profileKeyboard(b.profiles.Names())
	text := fmt.Sprintf("پروفایل فعلی: %s\nپروفایل جدید را انتخاب کنید:", state.SelectedProfile)
	if err := b.send(text, &keyboard); err != nil {
		slog.Error("Failed to send profile picker", "error", err)
	}
}
