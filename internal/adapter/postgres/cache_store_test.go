package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/jpgloss/internal/adapter/postgres"
	"github.com/heartmarshall/jpgloss/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/jpgloss/internal/domain"
	"github.com/heartmarshall/jpgloss/internal/provider"
)

func tenki(word string) *provider.DictionaryResult {
	return &provider.DictionaryResult{
		Word:    word,
		Reading: "てんき",
		Common:  true,
		Senses: []provider.SenseResult{
			{Meanings: []string{"weather", "the elements"}, PartsOfSpeech: []string{"Noun"}},
		},
	}
}

func TestCacheStore_PutGet(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	store := postgres.NewCacheStore(pool)
	ctx := context.Background()

	word := testhelper.UniqueWord("天気")
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, store.Put(ctx, word, tenki(word), at))

	got, err := store.Get(ctx, word)
	require.NoError(t, err)
	assert.Equal(t, tenki(word), got.Result)
	assert.True(t, at.Equal(got.FetchedAt))
}

func TestCacheStore_GetMissing(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	store := postgres.NewCacheStore(pool)

	_, err := store.Get(context.Background(), testhelper.UniqueWord("明日"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCacheStore_PutUpserts(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	store := postgres.NewCacheStore(pool)
	ctx := context.Background()

	word := testhelper.UniqueWord("天気")
	require.NoError(t, store.Put(ctx, word, tenki(word), time.Now()))

	updated := tenki(word)
	updated.Senses[0].Meanings = []string{"climate"}
	require.NoError(t, store.Put(ctx, word, updated, time.Now()))

	got, err := store.Get(ctx, word)
	require.NoError(t, err)
	assert.Equal(t, []string{"climate"}, got.Result.Senses[0].Meanings)
}

func TestCacheStore_PutEmptyWord(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	store := postgres.NewCacheStore(pool)

	err := store.Put(context.Background(), "", tenki(""), time.Now())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCacheStore_Purge(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	store := postgres.NewCacheStore(pool)
	ctx := context.Background()

	old := testhelper.UniqueWord("古い")
	fresh := testhelper.UniqueWord("新しい")
	// Far in the past so entries from other tests are never purged.
	ancient := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Put(ctx, old, tenki(old), ancient))
	require.NoError(t, store.Put(ctx, fresh, tenki(fresh), time.Now()))

	n, err := store.Purge(ctx, ancient.Add(time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	_, err = store.Get(ctx, old)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(ctx, fresh)
	assert.NoError(t, err)
}

func TestCacheStore_GetSeededRow(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	store := postgres.NewCacheStore(pool)

	word := testhelper.UniqueWord("今日")
	at := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	testhelper.SeedLookup(t, pool, word,
		`{"word":"今日","reading":"きょう","senses":[{"meanings":["today"]}]}`, at)

	got, err := store.Get(context.Background(), word)
	require.NoError(t, err)
	assert.Equal(t, "きょう", got.Result.Reading)
	assert.True(t, got.Result.HasMeaning())
	assert.True(t, at.Equal(got.FetchedAt))
}

func TestCacheStore_GetUndecodablePayload(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	store := postgres.NewCacheStore(pool)

	word := testhelper.UniqueWord("壊れ")
	testhelper.SeedLookup(t, pool, word, `[1, 2, 3]`, time.Now())

	_, err := store.Get(context.Background(), word)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "decode payload")
}

func TestCacheStore_Count(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	store := postgres.NewCacheStore(pool)
	ctx := context.Background()

	before, err := store.Count(ctx)
	require.NoError(t, err)

	word := testhelper.UniqueWord("天気")
	require.NoError(t, store.Put(ctx, word, tenki(word), time.Now()))

	after, err := store.Count(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after, before+1)
}
