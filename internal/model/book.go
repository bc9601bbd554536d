package model

// Book is a record in the books collection. UserID names the creating user
// and is never reassigned.
type Book struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"publishedYear"`
	UserID        string `json:"userId"`
}

// CreateBookRequest represents a book creation request.
type CreateBookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"publishedYear"`
}

// UpdateBookRequest is a partial update. Nil fields keep their stored value.
type UpdateBookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Genre         *string `json:"genre"`
	PublishedYear *int    `json:"publishedYear"`
}

// Apply merges the non-nil fields of req into b.
func (req UpdateBookRequest) Apply(b *Book) {
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.Genre != nil {
		b.Genre = *req.Genre
	}
	if req.PublishedYear != nil {
		b.PublishedYear = *req.PublishedYear
	}
}

// ListBooksQuery selects a page of books, optionally narrowed to one genre.
type ListBooksQuery struct {
	Genre string
	Page  int
	Limit int
}

// ListBooksResponse is one page of the (filtered) books collection.
type ListBooksResponse struct {
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Books []Book `json:"books"`
}

// BookResponse wraps a book with an acknowledgement message.
type BookResponse struct {
	Message string `json:"message"`
	Book    Book   `json:"book"`
}
