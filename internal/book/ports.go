package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book storage. Implementations own their
// concurrency: FindAndUpdate and FindAndDelete are atomic per record.
type Repository interface {
	// ListAll returns every book in storage order, or an empty slice.
	ListAll(ctx context.Context) ([]Book, error)
	// FindByID returns ErrNotFound when no record has id.
	FindByID(ctx context.Context, id string) (Book, error)
	// Create stores a record built from f, assigning the id and timestamps.
	// A schema violation is returned as a validation *Error.
	Create(ctx context.Context, f Fields) (Book, error)
	// FindAndUpdate merges p onto the record and returns the result. Existence
	// is checked first: an absent record yields ErrNotFound even if p is invalid.
	FindAndUpdate(ctx context.Context, id string, p Patch) (Book, error)
	// FindAndDelete removes the record and returns it, or ErrNotFound.
	FindAndDelete(ctx context.Context, id string) (Book, error)
	// IsWellFormedID is a pure syntactic check on the id shape.
	IsWellFormedID(id string) bool
}

// Pinger is implemented by repositories backed by a remote store.
type Pinger interface {
	Ping(ctx context.Context) error
}
