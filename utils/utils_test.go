package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 16)

	other, err := GenerateCode(8)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestCircuitBreakerPassesThrough(t *testing.T) {
	cb := NewCircuitBreaker("test")

	result, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestCircuitBreakerPropagatesError(t *testing.T) {
	cb := NewCircuitBreaker("test")
	boom := errors.New("boom")

	_, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
}
