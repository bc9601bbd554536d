package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookvault/bookvault-go/internal/middleware"
	"github.com/bookvault/bookvault-go/internal/model"
	"github.com/bookvault/bookvault-go/internal/service"
)

// BookHandler handles HTTP requests for book operations.
type BookHandler struct {
	service *service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{service: svc}
}

// HandleListBooks handles GET /books?genre=&page=&limit= requests.
// Unparseable page and limit values count as absent.
func (h *BookHandler) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	resp := h.service.List(r.Context(), model.ListBooksQuery{
		Genre: q.Get("genre"),
		Page:  page,
		Limit: limit,
	})

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetBook handles GET /books/{id} requests.
func (h *BookHandler) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			writeMessage(w, http.StatusNotFound, "Book not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// HandleCreateBook handles POST /books requests.
func (h *BookHandler) HandleCreateBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token required")
		return
	}

	var req model.CreateBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	book, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.BookResponse{Message: "Book created", Book: book})
}

// HandleUpdateBook handles PUT /books/{id} requests.
func (h *BookHandler) HandleUpdateBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token required")
		return
	}

	var req model.UpdateBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	book, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			writeMessage(w, http.StatusNotFound, "Book not found")
		case errors.Is(err, service.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "Not authorized to update this book")
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.BookResponse{Message: "Book updated", Book: book})
}

// HandleDeleteBook handles DELETE /books/{id} requests.
func (h *BookHandler) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token required")
		return
	}

	err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			writeMessage(w, http.StatusNotFound, "Book not found")
		case errors.Is(err, service.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "Not authorized to delete this book")
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Book deleted")
}
