package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/peyknews/peyk/app/pipeline"
)

const (
	titleSelector    = `input[name="title"]`
	leadSelector     = `textarea[name="lead"]`
	imageSelector    = `input[name="image_url"]`
	categorySelector = `select[name="category"]`
	editorBodyJS     = `document.querySelector('.editor-body [contenteditable], textarea[name="body"]')`
	saveSelector     = `//button[contains(., 'ذخیره')]`
)

// FormUploader creates CMS drafts by driving the admin add-news form,
// the same way a human editor would. The CMS has no API.
type FormUploader struct {
	browser *Browser
	addURL  string
	timeout time.Duration
}

func NewFormUploader(browser *Browser, addURL string, timeout time.Duration) *FormUploader {
	return &FormUploader{browser: browser, addURL: addURL, timeout: timeout}
}

func (u *FormUploader) Upload(ctx context.Context, payload pipeline.UploadPayload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tab, cancel := u.browser.Tab(u.timeout)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.Navigate(u.addURL),
		chromedp.WaitVisible(titleSelector),
		chromedp.SendKeys(titleSelector, payload.Title),
		chromedp.SendKeys(leadSelector, payload.Lead),
		fillEditorBody(payload.BodyHTML),
		selectCategory(payload.Category),
	}
	if payload.ImageURL != "" {
		actions = append(actions, chromedp.SendKeys(imageSelector, payload.ImageURL))
	}

	var editURL string
	actions = append(actions,
		chromedp.Click(saveSelector, chromedp.BySearch),
		chromedp.Sleep(2*time.Second),
		chromedp.Location(&editURL),
	)

	if err := chromedp.Run(tab, actions...); err != nil {
		return "", fmt.Errorf("drive add-news form: %w", err)
	}

	// Saving redirects to the draft's edit page; landing back on the
	// add form means the save did not go through.
	if editURL == "" || strings.HasPrefix(editURL, u.addURL) {
		return "", fmt.Errorf("save did not produce an edit page, landed on %s", editURL)
	}

	return editURL, nil
}

// fillEditorBody sets the rich-text editor content. The editor is a
// contenteditable region, so plain SendKeys would mangle the markup.
func fillEditorBody(bodyHTML string) chromedp.Action {
	encoded, _ := json.Marshal(bodyHTML)
	script := fmt.Sprintf(`(() => {
		const editor = %s;
		if (!editor) { return false; }
		if (editor.tagName === 'TEXTAREA') { editor.value = %s; }
		else { editor.innerHTML = %s; }
		editor.dispatchEvent(new Event('input', {bubbles: true}));
		return true;
	})()`, editorBodyJS, encoded, encoded)

	var ok bool
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := chromedp.Evaluate(script, &ok).Do(ctx); err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("article body editor not found")
		}
		return nil
	})
}

func selectCategory(category string) chromedp.Action {
	return chromedp.SetValue(categorySelector, category)
}
