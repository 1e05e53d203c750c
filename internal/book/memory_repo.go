package book

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is a process-local Repository. Ids use the ObjectID format so
// the well-formedness rule matches the durable backends.
type MemoryRepo struct {
	mu    sync.RWMutex
	books map[string]Book
	order []string
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		books: make(map[string]Book),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.books[id].Clone())
	}
	return out, nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id string) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	id = canonicalID(id)
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b.Clone(), nil
}

func (r *MemoryRepo) Create(ctx context.Context, f Fields) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	b := NewBook(f)
	if err := ValidateRecord(b); err != nil {
		return Book{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = primitive.NewObjectID().Hex()
	b.CreatedAt = r.now()
	b.UpdatedAt = b.CreatedAt
	r.books[b.ID] = b
	r.order = append(r.order, b.ID)
	return b.Clone(), nil
}

func (r *MemoryRepo) FindAndUpdate(ctx context.Context, id string, p Patch) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	id = canonicalID(id)
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	merged := Merge(existing, p)
	if err := ValidateRecord(merged); err != nil {
		return Book{}, err
	}
	merged.UpdatedAt = r.now()
	r.books[id] = merged
	return merged.Clone(), nil
}

func (r *MemoryRepo) FindAndDelete(ctx context.Context, id string) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	id = canonicalID(id)
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	delete(r.books, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return b, nil
}

func (r *MemoryRepo) IsWellFormedID(id string) bool {
	return primitive.IsValidObjectID(id)
}
