package jisho

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/jpgloss/internal/config"
	"github.com/heartmarshall/jpgloss/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

const tenkiBody = `{
	"meta": {"status": 200},
	"data": [{
		"slug": "天気",
		"is_common": true,
		"japanese": [{"word": "天気", "reading": "てんき"}],
		"senses": [
			{"english_definitions": ["weather", "the elements"], "parts_of_speech": ["Noun"]},
			{"english_definitions": ["fair weather", "sunshine"], "parts_of_speech": ["Noun", "No-adjective"]}
		]
	}]
}`

func TestProvider_FetchEntry_Success(t *testing.T) {
	t.Parallel()

	var gotKeyword, gotUA string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKeyword = r.URL.Query().Get("keyword")
		gotUA = r.Header.Get("User-Agent")
		writeJSON(w, tenkiBody)
	})

	p := NewProviderWithURL(srv.URL+"/api/v1/search/words?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "天気")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "天気", gotKeyword)
	assert.Equal(t, "jpgloss-test", gotUA)

	assert.Equal(t, "天気", result.Word)
	assert.Equal(t, "てんき", result.Reading)
	assert.True(t, result.Common)
	require.Len(t, result.Senses, 2)
	assert.Equal(t, []string{"weather", "the elements"}, result.Senses[0].Meanings)
	assert.Equal(t, []string{"Noun"}, result.Senses[0].PartsOfSpeech)
	assert.Equal(t, "weather", result.ToEntry().FirstMeaning())
}

func TestProvider_FetchEntry_URLEscaping(t *testing.T) {
	t.Parallel()

	var rawQuery string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(w, `{"meta":{"status":200},"data":[]}`)
	})

	p := NewProviderWithURL(srv.URL+"/search?keyword={word}&x=1", newTestLogger())
	_, err := p.FetchEntry(context.Background(), "今日 &")
	require.NoError(t, err)

	assert.Equal(t, "keyword=%E4%BB%8A%E6%97%A5+%26&x=1", rawQuery)
}

func TestProvider_FetchEntry_NotFound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "無い")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, int32(1), calls.Load(), "404 must not be retried")
}

func TestProvider_FetchEntry_EmptyData(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"meta":{"status":200},"data":[]}`)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "曖")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestProvider_FetchEntry_NoSenses(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"data":[
			{"slug":"昧","japanese":[{"word":"昧"}],"senses":[]},
			{"slug":"昧2","japanese":[{"word":"昧"}],"senses":[{"english_definitions":[" "]}]}
		]}`)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "昧")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestProvider_FetchEntry_MissingFields(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"meta":{"status":200}}`)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "今日")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestProvider_FetchEntry_ExactMatchPreferred(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"data":[
			{"slug":"今日は","japanese":[{"word":"今日は","reading":"こんにちは"}],
			 "senses":[{"english_definitions":["hello"],"parts_of_speech":["Expressions"]}]},
			{"slug":"今日","is_common":true,"japanese":[{"word":"今日","reading":"きょう"},{"word":"今日","reading":"こんにち"}],
			 "senses":[{"english_definitions":["today","this day"],"parts_of_speech":["Noun"]}]}
		]}`)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "今日")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "今日", result.Word)
	assert.Equal(t, "きょう", result.Reading)
	assert.Equal(t, "today", result.ToEntry().FirstMeaning())
}

func TestProvider_FetchEntry_KanaReadingMatch(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"data":[
			{"slug":"良い","japanese":[{"word":"良い","reading":"よい"}],
			 "senses":[{"english_definitions":["good"]}]},
			{"slug":"いい","japanese":[{"reading":"いい"}],
			 "senses":[{"english_definitions":["good","excellent"]}]}
		]}`)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "いい")
	require.NoError(t, err)
	require.NotNil(t, result)

	// The slug matches the second entry exactly.
	assert.Equal(t, "いい", result.Word)
	assert.Equal(t, []string{"good", "excellent"}, result.Senses[0].Meanings)
}

func TestProvider_FetchEntry_FallbackToFirst(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"data":[
			{"slug":"曖昧","japanese":[{"word":"曖昧","reading":"あいまい"}],
			 "senses":[{"english_definitions":["vague","ambiguous"]}]}
		]}`)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "曖")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "曖昧", result.Word)
	assert.Equal(t, "vague", result.ToEntry().FirstMeaning())
}

func TestProvider_FetchEntry_ServerErrorRetrySuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, tenkiBody)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "天気")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int32(2), calls.Load())
}

func TestProvider_FetchEntry_TooManyRequestsRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeJSON(w, tenkiBody)
	})

	p := NewProvider(config.DictionaryConfig{
		URLTemplate:    srv.URL + "/?keyword={word}",
		Timeout:        5 * time.Second,
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, newTestLogger())

	result, err := p.FetchEntry(context.Background(), "天気")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int32(3), calls.Load())
}

func TestProvider_FetchEntry_ServerErrorAllAttemptsFail(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "天気")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(2), calls.Load(), "one attempt plus one retry")
}

func TestProvider_FetchEntry_ClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	_, err := p.FetchEntry(context.Background(), "天気")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProvider_FetchEntry_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{not json`)
	})

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	result, err := p.FetchEntry(context.Background(), "天気")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestProvider_FetchEntry_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, tenkiBody)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProviderWithURL(srv.URL+"/?keyword={word}", newTestLogger())
	_, err := p.FetchEntry(ctx, "天気")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProvider_DefaultTemplate(t *testing.T) {
	t.Parallel()

	p := NewProvider(config.DictionaryConfig{}, newTestLogger())
	assert.Equal(t,
		"https://jisho.org/api/v1/search/words?keyword=%E5%A4%A9%E6%B0%97",
		p.buildURL("天気"),
	)
}
