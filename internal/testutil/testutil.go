// Package testutil holds HTTP helpers shared by handler and router tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewRequest builds a request with body marshalled as JSON. A string body is
// sent verbatim so tests can post malformed payloads.
func NewRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		b, _ := json.Marshal(v)
		reader = bytes.NewReader(b)
	}
	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// RecordResponse is a decoded HTTP response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
	List   []map[string]any
}

// RecordHTTPResponse decodes w's body into either Body (object) or List (array).
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	rec := RecordResponse{Code: result.StatusCode, Header: result.Header}
	trimmed := bytes.TrimSpace(bodyBytes)
	if len(trimmed) == 0 {
		return rec
	}
	if trimmed[0] == '[' {
		_ = json.Unmarshal(trimmed, &rec.List)
	} else {
		_ = json.Unmarshal(trimmed, &rec.Body)
	}
	return rec
}

// Serve runs r through h and records the result.
func Serve(t testing.TB, h http.Handler, r *http.Request) RecordResponse {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return RecordHTTPResponse(w)
}
