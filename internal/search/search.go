package search

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/vidyasagar/tango/internal/browser"
)

const (
	DefaultEndpoint       = "http://localhost:8080/search"
	DefaultQueryParam     = "query"
	DefaultResultSelector = ".result"
)

// Result represents a single search result.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Client talks to a dictionary search endpoint that answers
// GET <endpoint>?<param>=<term> with an HTML result page.
type Client struct {
	Endpoint       string
	QueryParam     string
	ResultSelector string
	fetcher        *browser.Fetcher
}

// NewClient creates a client for endpoint. Empty arguments take the defaults.
func NewClient(endpoint, queryParam, resultSelector string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if queryParam == "" {
		queryParam = DefaultQueryParam
	}
	if resultSelector == "" {
		resultSelector = DefaultResultSelector
	}
	return &Client{
		Endpoint:       endpoint,
		QueryParam:     queryParam,
		ResultSelector: resultSelector,
		fetcher:        browser.NewFetcher(),
	}
}

// URL returns the search page address for term.
func (c *Client) URL(term string) string {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return c.Endpoint + "?" + url.QueryEscape(c.QueryParam) + "=" + url.QueryEscape(term)
	}
	q := u.Query()
	q.Set(c.QueryParam, term)
	u.RawQuery = q.Encode()
	return u.String()
}

// Search fetches the result page for term and parses its entries.
func (c *Client) Search(ctx context.Context, term string) ([]Result, error) {
	pageURL := c.URL(term)

	res, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", term, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("searching %q: unexpected status %d", term, res.StatusCode)
	}
	if !browser.IsHTML(res.ContentType) {
		return nil, fmt.Errorf("searching %q: endpoint returned %s, want HTML", term, res.ContentType)
	}

	return c.Parse(res.Body, res.FinalURL)
}

// Parse extracts results from an HTML result page. Relative links are
// resolved against base.
func (c *Client) Parse(body []byte, base string) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}

	baseURL, _ := url.Parse(base)

	var results []Result

	doc.Find(c.ResultSelector).Each(func(i int, s *goquery.Selection) {
		anchor := s.Find("a[href]").First()

		title := strings.TrimSpace(s.Find(".result__title").First().Text())
		if title == "" {
			title = strings.TrimSpace(anchor.Text())
		}
		if title == "" {
			title = strings.Join(strings.Fields(s.Text()), " ")
		}
		if title == "" {
			return
		}

		var link string
		if href, ok := anchor.Attr("href"); ok {
			link = resolve(baseURL, href)
		}

		snippet := strings.Join(strings.Fields(s.Find(".result__snippet").Text()), " ")

		results = append(results, Result{
			Title:   title,
			URL:     link,
			Snippet: snippet,
		})
	})

	return results, nil
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
