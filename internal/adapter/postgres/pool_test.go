package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/jpgloss/internal/config"
)

func TestNewPool_InvalidDSN(t *testing.T) {
	t.Parallel()

	_, err := NewPool(context.Background(), config.PostgresConfig{DSN: "postgres://%zz", MaxConns: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: parse dsn")
}
