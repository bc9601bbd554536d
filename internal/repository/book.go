package repository

import (
	"context"
	"errors"

	"github.com/bookvault/bookvault-go/internal/model"
)

var ErrBookNotFound = errors.New("book not found")

// BookRepository handles book persistence operations.
type BookRepository struct {
	books *Collection[model.Book]
}

// NewBookRepository creates a new BookRepository over the books collection.
func NewBookRepository(store Store) *BookRepository {
	return &BookRepository{books: NewCollection[model.Book](store, BooksCollection)}
}

// List returns all books in stored order.
func (r *BookRepository) List(ctx context.Context) []model.Book {
	return r.books.Load(ctx)
}

// GetByID retrieves a book by exact ID match.
func (r *BookRepository) GetByID(ctx context.Context, id string) (model.Book, error) {
	for _, b := range r.books.Load(ctx) {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Book{}, ErrBookNotFound
}

// Create appends book to the collection.
func (r *BookRepository) Create(ctx context.Context, book model.Book) error {
	return r.books.Update(ctx, func(books []model.Book) ([]model.Book, error) {
		return append(books, book), nil
	})
}

// Update replaces the book with the given ID by the result of fn. fn sees the
// stored book and may veto the change by returning an error. The ID and owner
// of the stored book are preserved whatever fn returns.
func (r *BookRepository) Update(ctx context.Context, id string, fn func(model.Book) (model.Book, error)) (model.Book, error) {
	var updated model.Book
	err := r.books.Update(ctx, func(books []model.Book) ([]model.Book, error) {
		for i, b := range books {
			if b.ID != id {
				continue
			}
			next, err := fn(b)
			if err != nil {
				return nil, err
			}
			next.ID, next.UserID = b.ID, b.UserID
			books[i] = next
			updated = next
			return books, nil
		}
		return nil, ErrBookNotFound
	})
	return updated, err
}

// Delete removes the book with the given ID once check approves it.
func (r *BookRepository) Delete(ctx context.Context, id string, check func(model.Book) error) error {
	return r.books.Update(ctx, func(books []model.Book) ([]model.Book, error) {
		for i, b := range books {
			if b.ID != id {
				continue
			}
			if err := check(b); err != nil {
				return nil, err
			}
			return append(books[:i], books[i+1:]...), nil
		}
		return nil, ErrBookNotFound
	})
}
