package book

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bookcatalog/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Routes mounts the handlers on r, relative to the collection path.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f Fields
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}

	b, err := h.service.CreateBook(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.CheckID(id); err != nil {
		writeError(w, r, err)
		return
	}

	var p Patch
	if err := decodeBody(r, &p); err != nil {
		writeError(w, r, err)
		return
	}

	b, err := h.service.UpdateBook(r.Context(), id, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, http.StatusOK, "Book deleted successfully")
}

// decodeBody reads a single JSON object into dst. An empty body decodes as {}.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return Validation("Request body must contain a single JSON object", nil)
		}
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return Validation("Request body too large", nil)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Validation("Invalid value for field "+typeErr.Field, map[string]string{
			typeErr.Field: "must be a " + typeErr.Type.String(),
		})
	}
	return Validation("Request body must be a valid JSON object", nil)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := AsError(err)
	if e == nil {
		e = Unavailable("Internal server error", err)
	}
	message := e.Message
	if e.Kind == KindUnavailable && message == "" {
		message = "Internal server error"
	}
	httpx.JSONError(w, r, e.Kind.HTTPStatus(), e.Kind.Code(), message, e.Fields)
}
