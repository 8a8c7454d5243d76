package links

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// PageMetadata is whatever could be scraped from the target page. Any field
// may be empty; scraping is best-effort.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Favicon     string `json:"favicon"`
}

// Scraper fetches a page and pulls OpenGraph/standard metadata out of its
// head. The timeout is short: a slow third-party page must not hang the
// save-link request.
type Scraper struct {
	httpClient *http.Client
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{httpClient: &http.Client{Timeout: timeout}}
}

func (s *Scraper) Fetch(ctx context.Context, pageURL string) (PageMetadata, error) {
	var meta PageMetadata

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return meta, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return meta, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return meta, fmt.Errorf("fetch page: http %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return meta, fmt.Errorf("parse html: %w", err)
	}

	var pageTitle, metaDescription, iconHref string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && pageTitle == "" {
					pageTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				prop := attr(n, "property")
				name := attr(n, "name")
				content := attr(n, "content")
				switch {
				case prop == "og:title" && meta.Title == "":
					meta.Title = content
				case prop == "og:description" && meta.Description == "":
					meta.Description = content
				case prop == "og:image" && meta.Image == "":
					meta.Image = content
				case name == "description" && metaDescription == "":
					metaDescription = content
				}
			case "link":
				rel := attr(n, "rel")
				if (rel == "icon" || rel == "shortcut icon") && iconHref == "" {
					iconHref = attr(n, "href")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if meta.Title == "" {
		meta.Title = pageTitle
	}
	if meta.Description == "" {
		meta.Description = metaDescription
	}
	if iconHref != "" {
		if base, err := url.Parse(pageURL); err == nil {
			if ref, err := url.Parse(iconHref); err == nil {
				meta.Favicon = base.ResolveReference(ref).String()
			}
		}
	}

	return meta, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
