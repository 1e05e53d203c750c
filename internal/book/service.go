package book

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Service provides book-related business logic. It holds no mutable state of
// its own; concurrent calls are safe as long as the Repository is.
type Service struct {
	repo Repository
	log  *zap.Logger
}

// NewService creates a new book service. A nil logger discards output.
func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log.Named("book")}
}

// ListBooks returns every stored book as stored.
func (s *Service) ListBooks(ctx context.Context) ([]Book, error) {
	books, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("list books", zap.Error(err))
		return nil, Unavailable("Failed to fetch books", err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// GetBook returns one book.
func (s *Service) GetBook(ctx context.Context, id string) (Book, error) {
	if err := s.CheckID(id); err != nil {
		return Book{}, err
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return Book{}, ErrNotFound
		}
		s.log.Error("get book", zap.String("id", id), zap.Error(err))
		return Book{}, Unavailable("Failed to fetch book", err)
	}
	return b, nil
}

// CreateBook validates f and stores it. Every failure is a validation error.
func (s *Service) CreateBook(ctx context.Context, f Fields) (Book, error) {
	if err := checkRequired(f); err != nil {
		s.log.Debug("create rejected", zap.Error(err))
		return Book{}, err
	}

	b, err := s.repo.Create(ctx, f)
	if err != nil {
		if e := AsError(err); e != nil && e.Kind == KindValidation {
			s.log.Debug("create rejected by storage", zap.Error(err))
			return Book{}, e
		}
		s.log.Error("create book", zap.Error(err))
		return Book{}, &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}

	s.log.Info("book created", zap.String("id", b.ID))
	return b, nil
}

// UpdateBook merges p onto the stored record. A malformed id is reported
// before storage is touched.
func (s *Service) UpdateBook(ctx context.Context, id string, p Patch) (Book, error) {
	if err := s.CheckID(id); err != nil {
		return Book{}, err
	}

	b, err := s.repo.FindAndUpdate(ctx, id, p)
	if err != nil {
		switch e := AsError(err); {
		case e != nil && e.Kind == KindNotFound:
			return Book{}, ErrNotFound
		case e != nil && e.Kind == KindValidation:
			s.log.Debug("update rejected", zap.String("id", id), zap.Error(err))
			return Book{}, e
		}
		s.log.Error("update book", zap.String("id", id), zap.Error(err))
		return Book{}, &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}

	s.log.Info("book updated", zap.String("id", id))
	return b, nil
}

// DeleteBook permanently removes the record.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	if err := s.CheckID(id); err != nil {
		return err
	}

	if _, err := s.repo.FindAndDelete(ctx, id); err != nil {
		if KindOf(err) == KindNotFound {
			return ErrNotFound
		}
		s.log.Error("delete book", zap.String("id", id), zap.Error(err))
		return Unavailable("Failed to delete book", err)
	}

	s.log.Info("book deleted", zap.String("id", id))
	return nil
}

// CheckID returns ErrMalformedID when id does not have the storage id shape.
// It does not consult storage.
func (s *Service) CheckID(id string) error {
	if !s.repo.IsWellFormedID(id) {
		return ErrMalformedID
	}
	return nil
}

// checkRequired rejects blank title and author. Values are not trimmed.
func checkRequired(f Fields) error {
	fields := map[string]string{}
	var parts []string
	if strings.TrimSpace(f.Title) == "" {
		fields["title"] = "is required"
		parts = append(parts, "title is required")
	}
	if strings.TrimSpace(f.Author) == "" {
		fields["author"] = "is required"
		parts = append(parts, "author is required")
	}
	if len(parts) == 0 {
		return nil
	}
	return Validation("Book validation failed: "+strings.Join(parts, ", "), fields)
}
