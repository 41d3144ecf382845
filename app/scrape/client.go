package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-shiori/go-readability"

	"github.com/peyknews/peyk/app/pipeline"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

// renderWait gives client-side templates time to fill the page in
// after the load event.
const renderWait = 2 * time.Second

const metaDescriptionJS = `(document.querySelector('meta[name="description"]') ||
	document.querySelector('meta[property="og:description"]') ||
	{content: ''}).content`

const leadImageJS = `(document.querySelector('meta[property="og:image"]') || {content: ''}).content ||
	(document.querySelector('article img, .item-img img, .news-image img') || {src: ''}).src`

// Client renders source pages in a headless browser. News sites behind
// anti-bot frontends or with client-rendered bodies defeat plain HTTP
// fetching, so every scrape goes through a real browser tab.
type Client struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	timeout  time.Duration
}

func NewClient(timeout time.Duration) *Client {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		allocCtx: allocCtx,
		cancel:   cancel,
		timeout:  timeout,
	}
}

// Close shuts the browser down.
func (c *Client) Close() {
	c.cancel()
}

// Scrape loads pageURL in a fresh tab and extracts the article from the
// rendered DOM.
func (c *Client) Scrape(ctx context.Context, pageURL string) (*pipeline.ScrapedArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(c.allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, c.timeout)
	defer cancelTimeout()

	// Caller cancellation closes the tab too.
	go func() {
		select {
		case <-ctx.Done():
			cancelTab()
		case <-tabCtx.Done():
		}
	}()

	var title, pageHTML, description, imageURL string

	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(renderWait),
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &pageHTML),
		chromedp.Evaluate(metaDescriptionJS, &description),
		chromedp.Evaluate(leadImageJS, &imageURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", pageURL, err)
	}

	return extract(pageURL, pageHTML, title, description, imageURL)
}

// extract runs the rendered page through readability and assembles the
// scrape result, preferring page-level metadata where present.
func extract(pageURL, pageHTML, title, description, imageURL string) (*pipeline.ScrapedArticle, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid article URL %s: %w", pageURL, err)
	}

	result := &pipeline.ScrapedArticle{
		Title:    strings.TrimSpace(title),
		Lead:     strings.TrimSpace(description),
		BodyHTML: pageHTML,
		ImageURL: strings.TrimSpace(imageURL),
	}

	article, err := readability.FromReader(strings.NewReader(pageHTML), parsedURL)
	if err == nil && len(article.TextContent) > 100 {
		result.BodyHTML = article.Content

		if result.Title == "" {
			result.Title = strings.TrimSpace(article.Title)
		}
		if result.Lead == "" {
			result.Lead = strings.TrimSpace(article.Excerpt)
		}
		if result.ImageURL == "" {
			result.ImageURL = article.Image
		}
	}

	if strings.TrimSpace(result.BodyHTML) == "" {
		return nil, fmt.Errorf("no article content found at %s", pageURL)
	}

	return result, nil
}
