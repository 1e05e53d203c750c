package book

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const bookColumns = `id, title, author, genre, published_year, rating, created_at, updated_at`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.PublishedYear, &b.Rating, &b.CreatedAt, &b.UpdatedAt)
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, err
}

func (r *PostgresRepo) ListAll(ctx context.Context) ([]Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: list books")
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, errors.Wrap(err, "postgres: scan book")
		}
		out = append(out, b)
	}
	return out, errors.Wrap(rows.Err(), "postgres: list books")
}

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (Book, error) {
	id = canonicalID(id)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Wrapf(err, "postgres: find book %s", id)
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, f Fields) (Book, error) {
	b := NewBook(f)
	if err := ValidateRecord(b); err != nil {
		return Book{}, err
	}

	const sql = `
		INSERT INTO books (id, title, author, genre, published_year, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + bookColumns

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	out, err := scanBook(r.db.QueryRow(ctx, sql,
		primitive.NewObjectID().Hex(), b.Title, b.Author, b.Genre, b.PublishedYear, b.Rating,
	))
	if err != nil {
		return Book{}, errors.Wrap(err, "postgres: insert book")
	}
	return out, nil
}

// FindAndUpdate locks the row, merges in Go, validates and writes back in one
// transaction.
func (r *PostgresRepo) FindAndUpdate(ctx context.Context, id string, p Patch) (Book, error) {
	id = canonicalID(id)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var out Book
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		existing, err := scanBook(tx.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return errors.Wrapf(err, "postgres: lock book %s", id)
		}

		merged := Merge(existing, p)
		if err := ValidateRecord(merged); err != nil {
			return err
		}

		const sql = `
			UPDATE books
			SET title = $2, author = $3, genre = $4, published_year = $5, rating = $6, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + bookColumns
		out, err = scanBook(tx.QueryRow(ctx, sql,
			id, merged.Title, merged.Author, merged.Genre, merged.PublishedYear, merged.Rating,
		))
		return errors.Wrapf(err, "postgres: update book %s", id)
	})
	if err != nil {
		return Book{}, err
	}
	return out, nil
}

func (r *PostgresRepo) FindAndDelete(ctx context.Context, id string) (Book, error) {
	id = canonicalID(id)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(ctx, `DELETE FROM books WHERE id = $1 RETURNING `+bookColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Wrapf(err, "postgres: delete book %s", id)
	}
	return b, nil
}

// IsWellFormedID uses the ObjectID rule; ids are minted as ObjectID hex.
func (r *PostgresRepo) IsWellFormedID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(ctx)
}
