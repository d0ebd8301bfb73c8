// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv builds queries for the arXiv API and streams paginated
// results in submission-date-descending order.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-sifter/internal/httputil"
	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

// APIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var APIBase = "https://export.arxiv.org/api/query"

// broadQuery is the fallback when no venue text constrains the search.
// Selectivity then comes entirely from local filtering.
const broadQuery = "all:time"

const defaultPageSize = 100

// BuildQuery turns the free-text venue string into an arXiv search query.
// A non-empty venue constrains the comments field to contain the phrase.
// An empty venue degrades to a maximally permissive query; the returned
// broadened flag tells the caller to warn about it.
func BuildQuery(venue string) (query string, broadened bool) {
	venue = strings.TrimSpace(venue)
	if venue == "" {
		return broadQuery, true
	}
	return `co:"` + venue + `"`, false
}

// Stream is a lazy, finite, non-restartable sequence of candidate papers.
// Pages are fetched on demand; a fetch or parse failure ends the stream
// and is fatal to the run.
type Stream struct {
	client *http.Client
	cfg    types.StreamConfig
	query  string
	limit  int

	start     int
	delivered int
	total     int // totalResults reported by the feed; -1 before the first page
	buf       []types.CandidatePaper
	done      bool
}

// NewStream prepares a stream of at most limit results for query.
func NewStream(client *http.Client, query string, limit int, cfg types.StreamConfig) *Stream {
	return &Stream{client: client, cfg: cfg, query: query, limit: limit, total: -1}
}

// Next returns the next candidate, newest submission first. It returns
// io.EOF on normal exhaustion (cap reached or feed drained); any other
// error means the remote stream failed and no further items will come.
func (s *Stream) Next(ctx context.Context) (types.CandidatePaper, error) {
	if s.delivered >= s.limit {
		return types.CandidatePaper{}, io.EOF
	}
	for len(s.buf) == 0 {
		if s.done || (s.total >= 0 && s.start >= s.total) {
			return types.CandidatePaper{}, io.EOF
		}
		if err := s.fetchPage(ctx); err != nil {
			s.done = true
			return types.CandidatePaper{}, err
		}
	}
	p := s.buf[0]
	s.buf = s.buf[1:]
	s.delivered++
	return p, nil
}

// fetchPage requests the next page and appends its entries to the buffer.
// An empty page ends the stream.
func (s *Stream) fetchPage(ctx context.Context) error {
	if s.start > 0 && s.cfg.PageDelay > 0 {
		// arXiv terms of use: pause between consecutive requests.
		time.Sleep(s.cfg.PageDelay)
	}

	pageSize := s.cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if remaining := s.limit - s.delivered; remaining < pageSize {
		pageSize = remaining
	}

	params := url.Values{}
	params.Set("search_query", s.query)
	params.Set("start", strconv.Itoa(s.start))
	params.Set("max_results", strconv.Itoa(pageSize))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	resp, err := httputil.Get(ctx, s.client, APIBase+"?"+params.Encode(), s.cfg.UserAgent)
	if err != nil {
		return fmt.Errorf("arXiv API: %w", err)
	}
	defer resp.Body.Close()

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return fmt.Errorf("parsing arXiv response: %w", err)
	}

	s.total = feed.TotalResults
	if len(feed.Entries) == 0 {
		s.done = true
		return nil
	}

	for _, e := range feed.Entries {
		s.buf = append(s.buf, e.candidate())
	}
	s.start += len(feed.Entries)
	return nil
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	TotalResults int         `xml:"totalResults"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Comment    string         `xml:"comment"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
	Links      []atomLink     `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// candidate converts a feed entry into a CandidatePaper.
func (e atomEntry) candidate() types.CandidatePaper {
	p := types.CandidatePaper{
		Title:    strings.TrimSpace(e.Title),
		Abstract: strings.TrimSpace(e.Summary),
		Comment:  strings.TrimSpace(e.Comment),
		PDFURL:   e.pdfURL(),
	}

	for _, a := range e.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	for _, c := range e.Categories {
		if c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}
	if t, parseErr := time.Parse(time.RFC3339, e.Published); parseErr == nil {
		p.Published = t
	}
	return p
}

// pdfURL prefers the feed link titled "pdf" and falls back to rewriting
// the abstract URL (".../abs/..." → ".../pdf/...").
func (e atomEntry) pdfURL() string {
	for _, l := range e.Links {
		if l.Title == "pdf" && l.Href != "" {
			return l.Href
		}
	}
	if strings.Contains(e.ID, "/abs/") {
		return strings.Replace(e.ID, "/abs/", "/pdf/", 1)
	}
	return ""
}
