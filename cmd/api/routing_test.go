package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() config.Config {
	return config.Config{
		AllowedOrigins: []string{"*"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxBodyBytes:   1 << 10,
	}
}

func newTestServer(t *testing.T, pinger book.Pinger) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	service := book.NewService(book.NewMemoryRepo(), zap.NewNop())
	return newRouter(ctx, testConfig(), zap.NewNop(), service, pinger)
}

func TestRouting_BookLifecycle(t *testing.T) {
	for _, prefix := range []string{"/books", "/api/books"} {
		t.Run(prefix, func(t *testing.T) {
			h := newTestServer(t, nil)

			rec := testutil.Serve(t, h, testutil.NewRequest(http.MethodPost, prefix, map[string]any{
				"title":  "The Go Programming Language",
				"author": "Donovan",
				"rating": 5,
			}))
			require.Equal(t, http.StatusCreated, rec.Code)
			id, _ := rec.Body["id"].(string)
			require.NotEmpty(t, id)
			assert.NotEmpty(t, rec.Header.Get("X-Request-ID"))

			rec = testutil.Serve(t, h, testutil.NewRequest(http.MethodPut, prefix+"/"+id, map[string]any{"genre": "Programming"}))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "Programming", rec.Body["genre"])
			assert.Equal(t, "Donovan", rec.Body["author"])

			rec = testutil.Serve(t, h, testutil.NewRequest(http.MethodGet, prefix, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, rec.List, 1)

			rec = testutil.Serve(t, h, testutil.NewRequest(http.MethodDelete, prefix+"/"+id, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "Book deleted successfully", rec.Body["message"])

			rec = testutil.Serve(t, h, testutil.NewRequest(http.MethodDelete, prefix+"/"+id, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestRouting_ErrorResponsesCarryRequestID(t *testing.T) {
	h := newTestServer(t, nil)

	req := testutil.NewRequest(http.MethodPut, "/books/invalid-id-format", map[string]any{"title": "x"})
	req.Header.Set("X-Request-ID", "req-123")
	rec := testutil.Serve(t, h, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ID", rec.Body["code"])
	assert.Equal(t, "req-123", rec.Body["request_id"])
}

func TestRouting_BodyLimit(t *testing.T) {
	h := newTestServer(t, nil)
	big := `{"title":"` + strings.Repeat("a", 2<<10) + `","author":"A"}`

	t.Run("create", func(t *testing.T) {
		rec := testutil.Serve(t, h, testutil.NewRequest(http.MethodPost, "/books", big))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", rec.Body["code"])
	})

	t.Run("malformed id wins over body size", func(t *testing.T) {
		rec := testutil.Serve(t, h, testutil.NewRequest(http.MethodPut, "/books/invalid-id-format", big))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ID", rec.Body["code"])
	})

	t.Run("update", func(t *testing.T) {
		rec := testutil.Serve(t, h, testutil.NewRequest(http.MethodPost, "/books", map[string]any{"title": "T", "author": "A"}))
		require.Equal(t, http.StatusCreated, rec.Code)
		id, _ := rec.Body["id"].(string)

		rec = testutil.Serve(t, h, testutil.NewRequest(http.MethodPut, "/books/"+id, big))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", rec.Body["code"])
	})
}

func TestRouting_UnknownRoute(t *testing.T) {
	h := newTestServer(t, nil)

	rec := testutil.Serve(t, h, testutil.NewRequest(http.MethodGet, "/authors", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", rec.Body["code"])

	rec = testutil.Serve(t, h, testutil.NewRequest(http.MethodPatch, "/books", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouting_Health(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		rec := testutil.Serve(t, newTestServer(t, nil), testutil.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz without remote storage", func(t *testing.T) {
		rec := testutil.Serve(t, newTestServer(t, nil), testutil.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz storage down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pinger := book.NewMockPinger(ctrl)
		pinger.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		rec := testutil.Serve(t, newTestServer(t, pinger), testutil.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("readyz storage up", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pinger := book.NewMockPinger(ctrl)
		pinger.EXPECT().Ping(gomock.Any()).Return(nil)

		rec := testutil.Serve(t, newTestServer(t, pinger), testutil.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouting_NilLogger(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ctrl := gomock.NewController(t)
	pinger := book.NewMockPinger(ctrl)
	pinger.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	h := newRouter(ctx, testConfig(), nil, book.NewService(book.NewMemoryRepo(), nil), pinger)

	rec := testutil.Serve(t, h, testutil.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = testutil.Serve(t, h, testutil.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
