package testhelper

import (
	"context"
	"testing"
	"time"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	word := UniqueWord("天気")
	SeedLookup(t, pool, word, `{"word":"天気"}`, time.Now())

	// Verify the row exists in DB via SELECT.
	var got string
	err := pool.QueryRow(
		context.Background(),
		`SELECT payload->>'word' FROM lookup_cache WHERE word = $1`,
		word,
	).Scan(&got)
	if err != nil {
		t.Fatalf("expected lookup in DB, got error: %v", err)
	}

	if got != "天気" {
		t.Fatalf("expected payload word %q, got %q", "天気", got)
	}
}
