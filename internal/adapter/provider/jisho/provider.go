// Package jisho resolves Japanese words through the Jisho word search API.
package jisho

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/heartmarshall/jpgloss/internal/config"
	"github.com/heartmarshall/jpgloss/internal/domain"
	"github.com/heartmarshall/jpgloss/internal/provider"
)

// DefaultURLTemplate is the public Jisho search endpoint.
const DefaultURLTemplate = "https://jisho.org/api/v1/search/words?keyword={word}"

const maxBodyBytes = 4 << 20

// errWordNotFound stops retries on HTTP 404.
var errWordNotFound = errors.New("jisho: word not found")

// statusError is a non-200 response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// Provider fetches dictionary data from the Jisho API.
type Provider struct {
	urlTemplate    string
	userAgent      string
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	httpClient     *http.Client
	pacer          *pacer
	log            *slog.Logger
}

// NewProvider creates a Provider from the dictionary config.
func NewProvider(cfg config.DictionaryConfig, logger *slog.Logger) *Provider {
	tmpl := cfg.URLTemplate
	if tmpl == "" {
		tmpl = DefaultURLTemplate
	}
	return &Provider{
		urlTemplate:    tmpl,
		userAgent:      cfg.UserAgent,
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		pacer:          newPacer(cfg.RequestsPerMinute),
		log:            logger.With("adapter", "jisho"),
	}
}

// NewProviderWithURL creates a Provider with a custom URL template and short
// retry delays (for testing).
func NewProviderWithURL(urlTemplate string, logger *slog.Logger) *Provider {
	return NewProvider(config.DictionaryConfig{
		URLTemplate:    urlTemplate,
		UserAgent:      "jpgloss-test",
		Timeout:        5 * time.Second,
		MaxRetries:     1,
		InitialBackoff: 10 * time.Millisecond,
		MaxBackoff:     50 * time.Millisecond,
	}, logger)
}

// FetchEntry fetches the dictionary entry for word.
// Returns nil, nil if the word is not found (HTTP 404, no entries, or no
// English definitions).
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	reqURL := p.buildURL(word)

	p.log.DebugContext(ctx, "jisho request", slog.String("word", word))

	body, err := backoff.RetryNotifyWithData(
		func() ([]byte, error) { return p.get(ctx, reqURL) },
		p.retryPolicy(ctx),
		func(err error, next time.Duration) {
			p.log.WarnContext(ctx, "jisho retry",
				slog.String("word", word),
				slog.String("reason", err.Error()),
				slog.Duration("backoff", next),
			)
		},
	)
	if errors.Is(err, errWordNotFound) {
		return nil, nil
	}
	if err != nil {
		p.log.ErrorContext(ctx, "jisho request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("jisho: request failed: %w", err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("jisho: decode json: %w: %w", domain.ErrMalformedResponse, err)
	}

	result := mapAPIResponse(word, resp.Data)

	p.log.DebugContext(ctx, "jisho response",
		slog.String("word", word),
		slog.Int("entries", len(resp.Data)),
		slog.Bool("found", result != nil),
	)

	return result, nil
}

func (p *Provider) buildURL(word string) string {
	return strings.ReplaceAll(p.urlTemplate, "{word}", url.QueryEscape(word))
}

func (p *Provider) retryPolicy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initialBackoff
	if p.maxBackoff > 0 {
		b.MaxInterval = p.maxBackoff
	}
	b.MaxElapsedTime = 0

	retries := p.maxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// get performs one attempt. Errors wrapped in backoff.Permanent are not retried.
func (p *Provider) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := p.pacer.Wait(ctx); err != nil {
		return nil, backoff.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(errWordNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &statusError{code: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(&statusError{code: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// mapAPIResponse picks the entry for word and converts it into a
// provider.DictionaryResult. Returns nil if no entry carries a meaning.
func mapAPIResponse(word string, entries []apiEntry) *provider.DictionaryResult {
	entry, form, ok := pickEntry(word, entries)
	if !ok {
		return nil
	}

	result := &provider.DictionaryResult{
		Word:    form.Word,
		Reading: form.Reading,
		Common:  entry.IsCommon,
		Senses:  make([]provider.SenseResult, 0, len(entry.Senses)),
	}
	if result.Word == "" {
		result.Word = word
	}

	for _, s := range entry.Senses {
		meanings := make([]string, 0, len(s.EnglishDefinitions))
		for _, d := range s.EnglishDefinitions {
			if d = strings.TrimSpace(d); d != "" {
				meanings = append(meanings, d)
			}
		}
		if len(meanings) == 0 {
			continue
		}
		result.Senses = append(result.Senses, provider.SenseResult{
			Meanings:      meanings,
			PartsOfSpeech: s.PartsOfSpeech,
		})
	}

	if !result.HasMeaning() {
		return nil
	}
	return result
}

// pickEntry prefers an entry written exactly as word, then one read as word,
// then the first entry.
func pickEntry(word string, entries []apiEntry) (apiEntry, apiJapanese, bool) {
	if len(entries) == 0 {
		return apiEntry{}, apiJapanese{}, false
	}

	for _, e := range entries {
		for _, j := range e.Japanese {
			if j.Word == word {
				return e, j, true
			}
		}
		if e.Slug == word {
			return e, firstForm(e, word), true
		}
	}
	for _, e := range entries {
		for _, j := range e.Japanese {
			if j.Word == "" && j.Reading == word {
				return e, apiJapanese{Word: word, Reading: j.Reading}, true
			}
		}
	}

	return entries[0], firstForm(entries[0], ""), true
}

func firstForm(e apiEntry, word string) apiJapanese {
	if len(e.Japanese) == 0 {
		return apiJapanese{Word: word}
	}
	form := e.Japanese[0]
	if word != "" {
		form.Word = word
	}
	if form.Word == "" {
		form.Word = form.Reading
	}
	return form
}
