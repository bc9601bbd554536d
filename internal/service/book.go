package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bookvault/bookvault-go/internal/model"
	"github.com/bookvault/bookvault-go/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrForbidden    = errors.New("not the owner of this book")
)

// BookService handles book business logic. Only a book's creator may change it.
type BookService struct {
	repo *repository.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(repo *repository.BookRepository) *BookService {
	return &BookService{repo: repo}
}

// List returns one page of books, optionally filtered by genre
// (case-insensitive). Total counts the filtered books before paging.
func (s *BookService) List(ctx context.Context, q model.ListBooksQuery) model.ListBooksResponse {
	page, limit := normalizePage(q.Page, q.Limit)

	books := s.repo.List(ctx)
	if q.Genre != "" {
		filtered := books[:0]
		for _, b := range books {
			if strings.EqualFold(b.Genre, q.Genre) {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}

	total := len(books)
	window := []model.Book{}
	if page-1 <= total/limit {
		start := (page - 1) * limit
		end := min(start+limit, total)
		window = append(window, books[start:end]...)
	}

	return model.ListBooksResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Books: window,
	}
}

// Get returns the book with the given ID.
func (s *BookService) Get(ctx context.Context, id string) (model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Book{}, mapBookErr(err)
	}
	return book, nil
}

// Create stores a new book owned by userID.
func (s *BookService) Create(ctx context.Context, userID string, req model.CreateBookRequest) (model.Book, error) {
	book := model.Book{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		PublishedYear: req.PublishedYear,
		UserID:        userID,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return model.Book{}, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// Update applies the fields present in req to the book if userID owns it.
func (s *BookService) Update(ctx context.Context, userID, id string, req model.UpdateBookRequest) (model.Book, error) {
	book, err := s.repo.Update(ctx, id, func(b model.Book) (model.Book, error) {
		if b.UserID != userID {
			return b, ErrForbidden
		}
		req.Apply(&b)
		return b, nil
	})
	if err != nil {
		return model.Book{}, mapBookErr(err)
	}
	return book, nil
}

// Delete removes the book if userID owns it.
func (s *BookService) Delete(ctx context.Context, userID, id string) error {
	err := s.repo.Delete(ctx, id, func(b model.Book) error {
		if b.UserID != userID {
			return ErrForbidden
		}
		return nil
	})
	return mapBookErr(err)
}

func mapBookErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrBookNotFound):
		return ErrBookNotFound
	case errors.Is(err, ErrForbidden):
		return ErrForbidden
	default:
		return err
	}
}

// normalizePage replaces non-positive values with the defaults and caps limit.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
