package nyt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nytviewer/internal/domain"
)

const (
	SourceID   = "nyt"
	SourceName = "New York Times"

	DefaultBaseURL = "https://api.nytimes.com/svc/"

	noErrorMessage = "Received no error message from server."
	maxErrorBody   = 4 << 10
)

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// Config holds NYT source configuration.
type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source is the content API client. Every failure it returns is a
// *domain.TransportError, possibly wrapped.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new NYT source.
func New(cfg Config, logger *slog.Logger) *Source {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        baseURL,
		apiKey:         cfg.APIKey,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// GetSectionList fetches every section the newswire API knows.
func (s *Source) GetSectionList(ctx context.Context) ([]domain.Section, error) {
	results, err := fetch[APISection](ctx, s, "news/v3/content/section-list.json", nil)
	if err != nil {
		return nil, err
	}

	sections := make([]domain.Section, 0, len(results))
	for _, r := range results {
		sections = append(sections, domain.Section{
			Section:     r.Section,
			DisplayName: r.DisplayName,
		})
	}
	return sections, nil
}

// GetSectionArticles fetches one batch of a section's newest articles.
// The API expects limit and offset in multiples of 20, limit at most 500.
func (s *Source) GetSectionArticles(ctx context.Context, section string, limit, offset int) ([]domain.Article, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	results, err := fetch[APIArticle](ctx, s, "news/v3/content/all/"+section+".json", query)
	if err != nil {
		return nil, err
	}
	return s.transform(results), nil
}

func (s *Source) GetPopularEmailed(ctx context.Context, period domain.Period) ([]domain.Article, error) {
	return s.popular(ctx, "emailed", period)
}

func (s *Source) GetPopularShared(ctx context.Context, period domain.Period) ([]domain.Article, error) {
	return s.popular(ctx, "shared", period)
}

func (s *Source) GetPopularViewed(ctx context.Context, period domain.Period) ([]domain.Article, error) {
	return s.popular(ctx, "viewed", period)
}

func (s *Source) popular(ctx context.Context, kind string, period domain.Period) ([]domain.Article, error) {
	path := fmt.Sprintf("mostpopular/v2/%s/%d.json", kind, int(period))
	results, err := fetch[APIArticle](ctx, s, path, nil)
	if err != nil {
		return nil, err
	}
	return s.transform(results), nil
}

func fetch[T any](ctx context.Context, s *Source, path string, query url.Values) ([]T, error) {
	endpoint, err := s.endpoint(path, query)
	if err != nil {
		return nil, &domain.TransportError{Message: err.Error()}
	}

	var lastErr *domain.TransportError
	attempts := 0
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		attempts = attempt
		var resp APIResponse[T]
		retry, err := s.doRequest(ctx, endpoint, &resp)
		if err == nil {
			s.logger.Debug("fetched",
				"path", path,
				"results", len(resp.Results),
			)
			return resp.Results, nil
		}
		lastErr = err

		if !retry || attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"path", path,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, &domain.TransportError{Message: ctx.Err().Error()}
		case <-time.After(backoff):
		}
	}

	if attempts > 1 {
		return nil, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
	}
	return nil, lastErr
}

func (s *Source) endpoint(path string, query url.Values) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u = u.JoinPath(path)

	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if s.apiKey != "" {
		q.Set("api-key", s.apiKey)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// doRequest performs one GET and decodes the envelope into out. retry reports
// whether the failure is worth another attempt.
func (s *Source) doRequest(ctx context.Context, endpoint string, out any) (retry bool, err *domain.TransportError) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if reqErr != nil {
		return false, &domain.TransportError{Message: fmt.Sprintf("create request: %v", reqErr)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "NYTViewer/1.0")

	resp, doErr := s.httpClient.Do(req)
	if doErr != nil {
		return ctx.Err() == nil, &domain.TransportError{Message: networkMessage(doErr)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = noErrorMessage
		}
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retry, &domain.TransportError{Code: resp.StatusCode, Message: msg}
	}

	if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
		return false, &domain.TransportError{Message: fmt.Sprintf("decode response: %v", decErr)}
	}

	return false, nil
}

// networkMessage strips the *url.Error prefix, which would leak the api key.
func networkMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if s.maxBackoff > 0 && backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

// transform never drops a record: section paging relies on full page counts.
func (s *Source) transform(results []APIArticle) []domain.Article {
	articles := make([]domain.Article, 0, len(results))

	for _, r := range results {
		article := domain.Article{
			URI:           r.URI,
			URL:           r.URL,
			PublishedDate: s.parseDate(r.URI, r.PublishedDate),
			Section:       r.Section,
			Subsection:    r.Subsection,
			Title:         r.Title,
			Byline:        r.Byline,
			Abstract:      r.Abstract,
		}

		if r.Media != nil {
			article.Media = make([]domain.MediaItem, 0, len(r.Media))
			for _, m := range r.Media {
				item := domain.MediaItem{
					Type:    m.Type,
					Subtype: m.Subtype,
					Caption: m.Caption,
				}
				for _, md := range m.Metadata {
					item.Metadata = append(item.Metadata, domain.MediaMetadata{
						URL:    md.URL,
						Format: md.Format,
						Height: md.Height,
						Width:  md.Width,
					})
				}
				article.Media = append(article.Media, item)
			}
		}

		if r.MultiMedia != nil {
			article.MultiMedia = make([]domain.MultiMedia, 0, len(r.MultiMedia))
			for _, m := range r.MultiMedia {
				article.MultiMedia = append(article.MultiMedia, domain.MultiMedia{
					URL:     m.URL,
					Format:  m.Format,
					Type:    m.Type,
					Subtype: m.Subtype,
					Caption: m.Caption,
					Height:  m.Height,
					Width:   m.Width,
				})
			}
		}

		articles = append(articles, article)
	}

	return articles
}

func (s *Source) parseDate(uri, raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	s.logger.Warn("failed to parse date",
		"uri", uri,
		"date", raw,
	)
	return time.Time{}
}
