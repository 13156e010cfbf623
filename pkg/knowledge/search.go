// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/DMWllc/netragpt/pkg/logger"
	"github.com/DMWllc/netragpt/pkg/textmatch"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Snippet is one search-engine result line.
type Snippet struct {
	Title string
	URL   string
	Text  string
}

// Result is the external-knowledge bundle handed to the context builder.
// A timed-out or failed lookup yields an empty bundle, never an error: the
// caller treats "no data" and "lookup failed" identically.
type Result struct {
	Query            string
	WikipediaExtract string
	PersonSummary    string
	Snippets         []Snippet
	SourcesUsed      []string
}

// Empty reports whether the lookup produced nothing usable.
func (r *Result) Empty() bool {
	return r == nil || len(r.SourcesUsed) == 0
}

// Client performs Wikipedia and DuckDuckGo lookups with bounded timeouts and
// a short-lived result cache.
type Client struct {
	httpClient    *http.Client
	wikipediaBase string
	duckduckgoURL string
	maxResults    int
	cache         *expirable.LRU[string, *Result]
}

type Options struct {
	MaxResults int
	Timeout    time.Duration
	CacheTTL   time.Duration
	CacheSize  int
}

func NewClient(opts Options) *Client {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 3
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}
	return &Client{
		httpClient:    &http.Client{Timeout: opts.Timeout},
		wikipediaBase: "https://en.wikipedia.org/api/rest_v1/page/summary/",
		duckduckgoURL: "https://html.duckduckgo.com/html/",
		maxResults:    opts.MaxResults,
		cache:         expirable.NewLRU[string, *Result](opts.CacheSize, nil, opts.CacheTTL),
	}
}

var (
	personAskRegex  = regexp.MustCompile(`(?i)\bwho (?:is|was)\s+([^.!?\n]+)`)
	factualLead     = textmatch.KeywordSet{"what is", "what are", "who is", "who was", "when did", "where is", "why does", "how does", "tell me about"}
	currentLanguage = textmatch.KeywordSet{"latest", "news", "today", "current", "recent"}
	chitchatLead    = textmatch.KeywordSet{"hello", "hi there", "thanks", "thank you", "how are you"}
)

// ShouldSearch decides whether a message deserves an external lookup. The
// complex-factual signal contributes once to the decision.
func ShouldSearch(message string) bool {
	message = strings.TrimSpace(message)
	if message == "" || chitchatLead.ContainsAny(message) {
		return false
	}
	isComplexFactual := factualLead.ContainsAny(message) && len(strings.Fields(message)) >= 4
	return isComplexFactual || currentLanguage.ContainsAny(message)
}

// Search runs the lookups and returns whatever arrived within the timeout
// budget. Cached per normalized query.
func (c *Client) Search(ctx context.Context, query string) *Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Result{}
	}

	cacheKey := strings.ToLower(query)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached
	}

	result := &Result{Query: query}

	if m := personAskRegex.FindStringSubmatch(query); m != nil {
		subject := textmatch.NormalizePhrase(m[1])
		if summary := c.wikipediaSummary(ctx, subject); summary != "" {
			result.PersonSummary = summary
			result.SourcesUsed = append(result.SourcesUsed, "person_lookup")
		}
	}

	if result.PersonSummary == "" {
		if extract := c.wikipediaSummary(ctx, query); extract != "" {
			result.WikipediaExtract = extract
			result.SourcesUsed = append(result.SourcesUsed, "wikipedia")
		}
		if snippets := c.duckduckgoSearch(ctx, query); len(snippets) > 0 {
			result.Snippets = snippets
			result.SourcesUsed = append(result.SourcesUsed, "duckduckgo")
		}
	}

	c.cache.Add(cacheKey, result)
	return result
}

func (c *Client) wikipediaSummary(ctx context.Context, topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ""
	}
	title := strings.ReplaceAll(topic, " ", "_")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.wikipediaBase+url.PathEscape(title), nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.DebugCF("knowledge", "Wikipedia lookup failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	var payload struct {
		Extract string `json:"extract"`
		Type    string `json:"type"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Type == "disambiguation" {
		return ""
	}
	return strings.TrimSpace(payload.Extract)
}

var (
	ddgLinkRegex    = regexp.MustCompile(`<a[^>]*class="[^"]*result__a[^"]*"[^>]*href="([^"]+)"[^>]*>([\s\S]*?)</a>`)
	ddgSnippetRegex = regexp.MustCompile(`<a class="result__snippet[^"]*".*?>([\s\S]*?)</a>`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]+>`)
)

func (c *Client) duckduckgoSearch(ctx context.Context, query string) []Snippet {
	searchURL := fmt.Sprintf("%s?q=%s", c.duckduckgoURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.DebugCF("knowledge", "DuckDuckGo lookup failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	return extractSnippets(string(body), c.maxResults)
}

func extractSnippets(html string, count int) []Snippet {
	links := ddgLinkRegex.FindAllStringSubmatch(html, count+5)
	if len(links) == 0 {
		return nil
	}
	texts := ddgSnippetRegex.FindAllStringSubmatch(html, count+5)

	max := count
	if len(links) < max {
		max = len(links)
	}

	out := make([]Snippet, 0, max)
	for i := 0; i < max; i++ {
		urlStr := links[i][1]
		// DDG wraps outbound links; unwrap the uddg redirect parameter
		if strings.Contains(urlStr, "uddg=") {
			if u, err := url.QueryUnescape(urlStr); err == nil {
				if idx := strings.Index(u, "uddg="); idx != -1 {
					urlStr = u[idx+5:]
				}
			}
		}
		snippet := Snippet{
			Title: strings.TrimSpace(htmlTagRegex.ReplaceAllString(links[i][2], "")),
			URL:   urlStr,
		}
		if i < len(texts) {
			snippet.Text = strings.TrimSpace(htmlTagRegex.ReplaceAllString(texts[i][1], ""))
		}
		out = append(out, snippet)
	}
	return out
}
