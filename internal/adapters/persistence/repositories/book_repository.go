package repositories

import (
	"context"

	"bookloan/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return translateError(r.db.WithContext(ctx).Create(book).Error)
}

// GetByID gets a book by ID regardless of its active flag
func (r *bookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &book, nil
}

// UpdateFields updates the given columns and returns the fresh row
func (r *bookRepository) UpdateFields(ctx context.Context, id string, fields Fields) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&book).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&book).Updates(map[string]interface{}(fields)).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).First(&book).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &book, nil
}

// ListActive lists active books with pagination, newest first
func (r *bookRepository) ListActive(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	// Count total
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Where("active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}
