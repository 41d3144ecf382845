package cms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/peyknews/peyk/app/database"
)

var (
	// ErrLoginTimeout means the operator did not supply the login code
	// in time.
	ErrLoginTimeout = errors.New("timed out waiting for the login code")

	// ErrNoUserSelected means no CMS user is selected or its credential
	// is missing.
	ErrNoUserSelected = errors.New("no CMS user selected")
)

const (
	usernameSelector = `input[name="username"]`
	passwordSelector = `input[name="password"]`
	submitSelector   = `//button[@type='submit']`
	confirmSelector  = `//button[contains(., 'تایید')]`
)

// SessionManager owns the CMS admin session. The site texts a 6-digit
// code to the account's phone on every login, so logins are rationed to
// once per day and the code is relayed through the operator chat.
type SessionManager struct {
	mu sync.Mutex

	browser *Browser
	otp     *OTPGate
	state   database.StateRepository
	creds   database.CredentialRepository

	loginURL    string
	cookiesPath string
	codeWait    time.Duration
	stepTimeout time.Duration

	// RequestCode tells the operator a login code is needed. Left nil,
	// logins fail once the code wait elapses.
	RequestCode func() error

	restored bool
}

func NewSessionManager(browser *Browser, otp *OTPGate, state database.StateRepository,
	creds database.CredentialRepository, loginURL, cookiesPath string, stepTimeout time.Duration) *SessionManager {
	return &SessionManager{
		browser:     browser,
		otp:         otp,
		state:       state,
		creds:       creds,
		loginURL:    loginURL,
		cookiesPath: cookiesPath,
		codeWait:    5 * time.Minute,
		stepTimeout: stepTimeout,
	}
}

// EnsureLogin makes sure the browser holds a valid admin session. It is
// serialized: concurrent callers wait rather than race the login form.
// A successful login is recorded and not repeated until the next day.
func (m *SessionManager) EnsureLogin(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.restored {
		if err := m.browser.RestoreCookies(m.cookiesPath); err != nil {
			slog.Warn("Cookie restore failed, continuing without", "error", err)
		}
		m.restored = true
	}

	state, err := m.state.Get()
	if err != nil {
		return fmt.Errorf("load run state: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	if state.LastLoginDate == today {
		return nil
	}

	if state.SelectedUser == "" {
		return ErrNoUserSelected
	}
	cred, err := m.creds.Get(state.SelectedUser)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if cred == nil {
		return ErrNoUserSelected
	}

	if err := m.login(ctx, cred); err != nil {
		return err
	}

	if err := m.browser.SaveCookies(m.cookiesPath); err != nil {
		slog.Error("Cookie save failed", "error", err)
	}
	if err := m.state.SetLastLoginDate(today); err != nil {
		return fmt.Errorf("record login date: %w", err)
	}

	slog.Info("CMS login completed", "user", cred.Username)

	return nil
}

func (m *SessionManager) login(ctx context.Context, cred *database.Credential) error {
	tab, cancel := m.browser.Tab(m.stepTimeout)
	defer cancel()

	err := chromedp.Run(tab,
		chromedp.Navigate(m.loginURL),
		chromedp.WaitVisible(usernameSelector),
		chromedp.SendKeys(usernameSelector, cred.Username),
		chromedp.SendKeys(passwordSelector, cred.Password),
		chromedp.Click(submitSelector, chromedp.BySearch),
	)
	if err != nil {
		return fmt.Errorf("submit login form: %w", err)
	}

	code, err := m.awaitCode(ctx)
	if err != nil {
		return err
	}

	if err := m.submitCode(tab, code); err != nil {
		return err
	}

	return nil
}

// awaitCode asks the operator for the texted code and waits for it.
func (m *SessionManager) awaitCode(ctx context.Context) (string, error) {
	ch, err := m.otp.Prepare()
	if err != nil {
		return "", err
	}

	if m.RequestCode != nil {
		if err := m.RequestCode(); err != nil {
			slog.Error("Login code request notification failed", "error", err)
		}
	}

	select {
	case code := <-ch:
		return code, nil
	case <-time.After(m.codeWait):
		m.otp.Cancel()
		return "", ErrLoginTimeout
	case <-ctx.Done():
		m.otp.Cancel()
		return "", ctx.Err()
	}
}

// submitCode types the code into the six single-digit inputs and
// confirms.
func (m *SessionManager) submitCode(tab context.Context, code string) error {
	if len(code) != 6 {
		return fmt.Errorf("login code must be 6 digits, got %q", code)
	}

	actions := []chromedp.Action{
		chromedp.WaitVisible(`input[name="otp1"]`),
	}
	for i, digit := range code {
		selector := fmt.Sprintf(`input[name="otp%d"]`, i+1)
		actions = append(actions, chromedp.SendKeys(selector, string(digit)))
	}
	actions = append(actions,
		chromedp.Click(confirmSelector, chromedp.BySearch),
		chromedp.Sleep(2*time.Second),
	)

	if err := chromedp.Run(tab, actions...); err != nil {
		return fmt.Errorf("submit login code: %w", err)
	}

	return nil
}
