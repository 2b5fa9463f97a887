package handlers

import (
	"time"

	"bookloan/internal/adapters/http/middleware"
	"bookloan/internal/core/services"
	"bookloan/internal/pkg/pagination"
	"bookloan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// CreateBookRequest represents create book request body
type CreateBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Publisher   string  `json:"publisher"`
	PublishedAt *string `json:"publishedAt"`
	Available   *bool   `json:"available"`
	Active      *bool   `json:"active"`
}

// UpdateBookRequest represents update book request body. Omitted fields are left unchanged.
type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Genre       *string `json:"genre"`
	Publisher   *string `json:"publisher"`
	PublishedAt *string `json:"publishedAt"`
	Available   *bool   `json:"available"`
	Active      *bool   `json:"active"`
}

// CreateBook handles adding a book
// @Summary Create book
// @Description Add a book to the catalog. Requires canCreateBooks.
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookRequest true "Book data"
// @Success 201 {object} response.Response{data=models.Book}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /books/create [post]
func (h *BookHandler) CreateBook(c *fiber.Ctx) error {
	var req CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	publishedAt, err := optionalDate(req.PublishedAt)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	book, err := h.bookService.CreateBook(c.Context(), middleware.Identity(c), &services.CreateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Publisher:   req.Publisher,
		PublishedAt: publishedAt,
		Available:   req.Available,
		Active:      req.Active,
	})
	if err != nil {
		return writeError(c, err, "create book")
	}

	return response.Created(c, "Book created successfully", book)
}

// ListBooks handles listing active books
// @Summary List books
// @Description Paginated list of active books, newest first
// @Tags Books
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response{data=pagination.Response}
// @Router /books [get]
func (h *BookHandler) ListBooks(c *fiber.Ctx) error {
	result, err := h.bookService.ListBooks(c.Context(), pagination.GetParams(c))
	if err != nil {
		return writeError(c, err, "list books")
	}

	return response.Page(c, "Books retrieved successfully", result)
}

// GetBook handles getting a book by ID
// @Summary Get book by ID
// @Description Public. Soft-deleted books are returned as well.
// @Tags Books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response{data=models.Book}
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c *fiber.Ctx) error {
	book, err := h.bookService.GetBook(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "get book")
	}

	return response.Success(c, "Book retrieved successfully", book)
}

// UpdateBook handles a partial book update
// @Summary Update book
// @Description Apply the present fields. Requires canEditBooks.
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param body body UpdateBookRequest true "Fields to update"
// @Success 200 {object} response.Response{data=models.Book}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(c *fiber.Ctx) error {
	var req UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	publishedAt, err := optionalDate(req.PublishedAt)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	book, err := h.bookService.UpdateBook(c.Context(), middleware.Identity(c), c.Params("id"), &services.UpdateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Publisher:   req.Publisher,
		PublishedAt: publishedAt,
		Available:   req.Available,
		Active:      req.Active,
	})
	if err != nil {
		return writeError(c, err, "update book")
	}

	return response.Success(c, "Book updated successfully", book)
}

// DeleteBook handles soft-deleting a book
// @Summary Disable book
// @Description Mark the book inactive; availability is unchanged. Requires canDisableBooks.
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response{data=models.Book}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *fiber.Ctx) error {
	book, err := h.bookService.DeleteBook(c.Context(), middleware.Identity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, "delete book")
	}

	return response.Success(c, "Book deleted successfully", book)
}

func optionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	return parseDate(*value)
}
