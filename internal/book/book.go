package book

import (
	"strings"
	"time"
)

// Book represents a catalog entry.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title" validate:"notblank"`
	Author        string    `json:"author" validate:"notblank"`
	Genre         *string   `json:"genre,omitempty"`
	PublishedYear *int      `json:"publishedYear,omitempty"`
	Rating        *float64  `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Fields is the client-supplied field set for a new book.
// Keys the client sends that are not listed here are ignored.
type Fields struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Genre         *string  `json:"genre,omitempty"`
	PublishedYear *int     `json:"publishedYear,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
}

// NewBook builds an unsaved record from f. The caller assigns ID and timestamps.
func NewBook(f Fields) Book {
	return Book{
		Title:         f.Title,
		Author:        f.Author,
		Genre:         clonePtr(f.Genre),
		PublishedYear: clonePtr(f.PublishedYear),
		Rating:        clonePtr(f.Rating),
	}
}

// Clone returns a copy of b that shares no pointers with it.
func (b Book) Clone() Book {
	b.Genre = clonePtr(b.Genre)
	b.PublishedYear = clonePtr(b.PublishedYear)
	b.Rating = clonePtr(b.Rating)
	return b
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// canonicalID folds a well-formed id to the lowercase hex every backend
// stores. Hex digits are case-insensitive, so "6650F1..." names the same record.
func canonicalID(id string) string {
	return strings.ToLower(id)
}
