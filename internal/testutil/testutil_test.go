package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPResponse(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/list" {
			_, _ = w.Write([]byte(`[{"id":"1"}]`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})

	rec := Serve(t, h, NewRequest(http.MethodGet, "/list", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.List, 1)
	assert.Nil(t, rec.Body)

	rec = Serve(t, h, NewRequest(http.MethodPost, "/one", map[string]string{"title": "x"}))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "1", rec.Body["id"])
}

func TestNewRequest_RawString(t *testing.T) {
	r := NewRequest(http.MethodPost, "/books", `{"title":`)
	assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

	w := httptest.NewRecorder()
	http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		n, _ := r.Body.Read(buf)
		_, _ = w.Write(buf[:n])
	}).ServeHTTP(w, r)
	assert.Equal(t, `{"title":`, w.Body.String())
}
