package cms

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/peyknews/peyk/app/jalali"
)

const (
	publishCheckbox     = `input[name="publish"]`
	frontPageCheckbox   = `input[name="show_on_front"]`
	publishDateSelector = `input[name="publish_date"]`
)

// FormPublisher flips an uploaded draft to published via its edit page.
type FormPublisher struct {
	browser *Browser
	timeout time.Duration
}

func NewFormPublisher(browser *Browser, timeout time.Duration) *FormPublisher {
	return &FormPublisher{browser: browser, timeout: timeout}
}

func (p *FormPublisher) Publish(ctx context.Context, editURL string, publishedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// The CMS scheduling field takes Jalali wall-clock time.
	stamp, err := jalali.Timestamp(publishedAt)
	if err != nil {
		return fmt.Errorf("format publish date: %w", err)
	}

	tab, cancel := p.browser.Tab(p.timeout)
	defer cancel()

	err = chromedp.Run(tab,
		chromedp.Navigate(editURL),
		chromedp.WaitVisible(publishCheckbox),
		setChecked(publishCheckbox),
		setChecked(frontPageCheckbox),
		chromedp.SetValue(publishDateSelector, stamp),
		chromedp.Click(saveSelector, chromedp.BySearch),
		chromedp.Sleep(2*time.Second),
	)
	if err != nil {
		return fmt.Errorf("drive edit form at %s: %w", editURL, err)
	}

	return nil
}

// setChecked ticks a checkbox regardless of its current state.
func setChecked(selector string) chromedp.Action {
	script := fmt.Sprintf(`(() => {
		const box = document.querySelector(%q);
		if (!box) { return false; }
		if (!box.checked) { box.click(); }
		return true;
	})()`, selector)

	var ok bool
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := chromedp.Evaluate(script, &ok).Do(ctx); err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("checkbox %s not found", selector)
		}
		return nil
	})
}
