// Package news scrapes recent crypto headlines to enrich the sentiment
// prompt. Everything here is best effort: a failed scrape yields zero
// headlines and never aborts an evaluation cycle.
package news

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"sui-signal-bot/internal/logger"
)

const minHeadlineLen = 20

// Scraper pulls headlines from a single listing page.
type Scraper struct {
	url     string
	timeout time.Duration
}

func NewScraper(listURL string) *Scraper {
	return &Scraper{
		url:     listURL,
		timeout: 15 * time.Second,
	}
}

// Recent returns up to max recent headlines from the configured page,
// deduplicated and in page order.
func (s *Scraper) Recent(ctx context.Context, max int) ([]string, error) {
	var headlines []string
	seen := map[string]bool{}

	c := colly.NewCollector(
		colly.AllowedDomains(domain(s.url)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	// Article cards vary across news sites; walk anchors that look like
	// article links and take their visible title text.
	c.OnHTML("article, li, div", func(e *colly.HTMLElement) {
		if len(headlines) >= max {
			return
		}
		e.DOM.Find("a[href*='/news/'], a[href*='/article']").Each(func(_ int, a *goquery.Selection) {
			if len(headlines) >= max {
				return
			}
			title := strings.TrimSpace(a.Text())
			if len(title) < minHeadlineLen || seen[title] {
				return
			}
			seen[title] = true
			headlines = append(headlines, title)
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Warn(ctx, "Headline scrape error", "url", r.Request.URL.String(), "error", err)
	})

	if err := c.Visit(s.url); err != nil {
		return nil, err
	}
	c.Wait()

	logger.Debug(ctx, "Headlines scraped", "url", s.url, "count", len(headlines))
	return headlines, nil
}

func domain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
