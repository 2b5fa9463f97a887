package config

import (
	"context"
	"time"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/pkg/logger"
)

// seedSampleBooks fills an empty catalog with a few demo books
func (s *Seeder) seedSampleBooks(ctx context.Context) error {
	_, total, err := s.stores.Books.ListActive(ctx, 0, 1)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	books := []models.Book{
		{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Publisher: "Chilton Books", PublishedAt: date(1965, time.August, 1)},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Romance", Publisher: "T. Egerton", PublishedAt: date(1813, time.January, 28)},
		{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", Genre: "Science Fiction", Publisher: "Ace Books", PublishedAt: date(1969, time.March, 1)},
		{Title: "One Hundred Years of Solitude", Author: "Gabriel García Márquez", Genre: "Magical Realism", Publisher: "Editorial Sudamericana", PublishedAt: date(1967, time.May, 30)},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt, David Thomas", Genre: "Software", Publisher: "Addison-Wesley", PublishedAt: date(1999, time.October, 20)},
	}

	for i := range books {
		books[i].Available = true
		books[i].Active = true
		if err := s.stores.Books.Create(ctx, &books[i]); err != nil {
			return err
		}
	}

	logger.With("seeder").WithField("count", len(books)).Info("sample books seeded")
	return nil
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
