package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/core/domain"
	"bookloan/internal/pkg/logger"
	"bookloan/internal/pkg/pagination"
)

// BookService handles the catalog
type BookService struct {
	bookRepo repositories.BookRepository
	gate     *Gate
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository, gate *Gate) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		gate:     gate,
	}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	Title       string
	Author      string
	Genre       string
	Publisher   string
	PublishedAt *time.Time
	Available   *bool
	Active      *bool
}

// UpdateBookInput lists every field a book update may touch. Nil means absent.
type UpdateBookInput struct {
	Title       *string
	Author      *string
	Genre       *string
	Publisher   *string
	PublishedAt *time.Time
	Available   *bool
	Active      *bool
}

// CreateBook adds a book to the catalog
func (s *BookService) CreateBook(ctx context.Context, actor *domain.Identity, input *CreateBookInput) (*models.Book, error) {
	title := strings.TrimSpace(input.Title)
	author := strings.TrimSpace(input.Author)

	// 1. Validate required fields
	if title == "" || author == "" {
		return nil, fmt.Errorf("%w: title and author are required", domain.ErrValidation)
	}

	// 2. Authorize
	if err := s.gate.CanCreateBook(actor); err != nil {
		return nil, err
	}

	// 3. Create book; availability and activity default to true
	book := &models.Book{
		Title:       title,
		Author:      author,
		Genre:       strings.TrimSpace(input.Genre),
		Publisher:   strings.TrimSpace(input.Publisher),
		PublishedAt: input.PublishedAt,
		Available:   boolOr(input.Available, true),
		Active:      boolOr(input.Active, true),
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	logger.With("catalog").WithField("book_id", book.ID).WithField("actor_id", actor.UserID).Info("book created")
	return book, nil
}

// GetBook returns a book whether or not it is active
func (s *BookService) GetBook(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, bookError(err)
	}
	return book, nil
}

// ListBooks returns a page of active books, newest first
func (s *BookService) ListBooks(ctx context.Context, params *pagination.Params) (*pagination.Response, error) {
	books, total, err := s.bookRepo.ListActive(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}
	return pagination.NewResponse(books, params, total), nil
}

// UpdateBook applies the present fields of input
func (s *BookService) UpdateBook(ctx context.Context, actor *domain.Identity, id string, input *UpdateBookInput) (*models.Book, error) {
	if err := s.gate.CanEditBook(actor); err != nil {
		return nil, err
	}
	if input == nil {
		input = &UpdateBookInput{}
	}

	fields := repositories.Fields{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", domain.ErrValidation)
		}
		fields[repositories.ColTitle] = title
	}
	if input.Author != nil {
		author := strings.TrimSpace(*input.Author)
		if author == "" {
			return nil, fmt.Errorf("%w: author cannot be blank", domain.ErrValidation)
		}
		fields[repositories.ColAuthor] = author
	}
	if input.Genre != nil {
		fields[repositories.ColGenre] = strings.TrimSpace(*input.Genre)
	}
	if input.Publisher != nil {
		fields[repositories.ColPublisher] = strings.TrimSpace(*input.Publisher)
	}
	if input.PublishedAt != nil {
		fields[repositories.ColPublishedAt] = *input.PublishedAt
	}
	setFlag(fields, repositories.ColAvailable, input.Available)
	setFlag(fields, repositories.ColActive, input.Active)

	book, err := s.bookRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, bookError(err)
	}
	return book, nil
}

// DeleteBook soft-deletes a book. Availability is left as it was.
func (s *BookService) DeleteBook(ctx context.Context, actor *domain.Identity, id string) (*models.Book, error) {
	if err := s.gate.CanDisableBook(actor); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.UpdateFields(ctx, id, repositories.Fields{repositories.ColActive: false})
	if err != nil {
		return nil, bookError(err)
	}

	logger.With("catalog").WithField("book_id", id).WithField("actor_id", actor.UserID).Info("book disabled")
	return book, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func bookError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return domain.ErrBookNotFound
	}
	return err
}
