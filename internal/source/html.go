package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlSource scrapes a static HTML page with CSS selectors. No script
// execution: whatever the server sends is what gets parsed.
type htmlSource struct {
	base
}

func (s *htmlSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	rules := s.cfg.HTML
	titleAttr := rules.TitleAttr
	if titleAttr == "" {
		titleAttr = "text"
	}
	urlAttr := rules.URLAttr
	if urlAttr == "" {
		urlAttr = "href"
	}
	tsAttr := rules.TSAttr
	if tsAttr == "" {
		tsAttr = "datetime"
	}

	pageURL, _ := url.Parse(s.cfg.Endpoint)

	var items []Item
	doc.Find(rules.Item).Each(func(_ int, node *goquery.Selection) {
		var title string
		if titleAttr == "text" {
			title = strings.TrimSpace(node.Text())
		} else {
			title = node.AttrOr(titleAttr, "")
		}

		link := node.AttrOr(urlAttr, "")
		if link != "" && !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
			link = resolveURL(pageURL, link)
		}

		if title == "" || link == "" {
			return
		}

		// Optional timestamp: look inside the item node first, then
		// fall back to the whole document.
		var ts any
		if rules.TSSelector != "" {
			tnode := node.Find(rules.TSSelector).First()
			if tnode.Length() == 0 {
				tnode = doc.Find(rules.TSSelector).First()
			}
			if tnode.Length() > 0 {
				if v := tnode.AttrOr(tsAttr, ""); v != "" {
					ts = v
				} else if v := strings.TrimSpace(tnode.Text()); v != "" {
					ts = v
				}
			}
		}

		if item, ok := s.mkItem(title, link, ts, nil); ok {
			items = append(items, item)
		}
	})
	return items, nil
}

// resolveURL joins a relative link against the page URL. Unresolvable
// links are returned as-is and filtered by the caller if empty.
func resolveURL(page *url.URL, link string) string {
	if page == nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return page.ResolveReference(ref).String()
}
