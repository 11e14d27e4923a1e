package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueWord returns base with a short random suffix so tests sharing the
// container never collide on the lookup_cache primary key.
func UniqueWord(base string) string {
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
}

// SeedLookup inserts a raw lookup_cache row. payload must be valid JSON.
func SeedLookup(t *testing.T, pool *pgxpool.Pool, word, payload string, fetchedAt time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO lookup_cache (word, payload, fetched_at) VALUES ($1, $2, $3)`,
		word, payload, fetchedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed lookup %q: %v", word, err)
	}
}
