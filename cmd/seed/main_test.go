package main

import (
	"context"
	"math/rand"
	"testing"

	"bookcatalog/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_CreatesValidBooks(t *testing.T) {
	repo := book.NewMemoryRepo()
	service := book.NewService(repo, nil)

	created, err := seed(context.Background(), service, rand.New(rand.NewSource(1)), 50)
	require.NoError(t, err)
	assert.Equal(t, 50, created)

	books, err := service.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 50)
	for _, b := range books {
		require.NotNil(t, b.Rating)
		assert.GreaterOrEqual(t, *b.Rating, 1.0)
		assert.LessOrEqual(t, *b.Rating, 5.0)
		assert.NotEmpty(t, b.Author)
	}
}

func TestSeed_StopsAtFirstFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := book.NewService(book.NewMemoryRepo(), nil)
	created, err := seed(ctx, service, rand.New(rand.NewSource(1)), 3)

	require.Error(t, err)
	assert.Equal(t, 0, created)
}
