package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/core/domain"
	"bookloan/internal/pkg/logger"
	"bookloan/internal/pkg/password"
)

// Seeder handles store seeding
type Seeder struct {
	stores *repositories.Stores
	cfg    *Config
	hasher *password.Hasher
}

// NewSeeder creates a new seeder instance
func NewSeeder(stores *repositories.Stores, cfg *Config) *Seeder {
	return &Seeder{
		stores: stores,
		cfg:    cfg,
		hasher: password.NewHasher(cfg.Security.BcryptCost),
	}
}

// Run executes all seeders. Seeding problems are logged, never fatal.
func (s *Seeder) Run(ctx context.Context) error {
	log := logger.With("seeder")
	log.Info("running seeders")

	if err := s.seedAdminUser(ctx); err != nil {
		log.WithError(err).Warn("admin seeder skipped")
	}

	if s.cfg.SeedSampleBooks {
		if err := s.seedSampleBooks(ctx); err != nil {
			log.WithError(err).Warn("sample book seeder skipped")
		}
	}

	log.Info("seeding completed")
	return nil
}

// seedAdminUser makes sure ADMIN_EMAIL exists and holds every capability.
// Without it no account could ever be granted a capability through the API.
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	email := strings.TrimSpace(s.cfg.Admin.Email)
	if email == "" {
		return nil
	}
	log := logger.With("seeder").WithField("email", email)

	existing, err := s.stores.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Permissions() == domain.AllPermissions() {
			return nil
		}
		_, err = s.stores.Users.UpdateFields(ctx, existing.ID, repositories.Fields{
			repositories.ColCanCreateBooks:  true,
			repositories.ColCanEditBooks:    true,
			repositories.ColCanDisableBooks: true,
			repositories.ColCanEditUsers:    true,
			repositories.ColCanDisableUsers: true,
		})
		if err == nil {
			log.Info("admin capabilities restored")
		}
		return err
	case !errors.Is(err, repositories.ErrNotFound):
		return err
	}

	if s.cfg.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD is not set")
	}
	if len(s.cfg.Admin.Password) > password.MaxLength {
		return fmt.Errorf("ADMIN_PASSWORD must be at most %d bytes", password.MaxLength)
	}

	hashed, err := s.hasher.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     s.cfg.Admin.Name,
		Email:    email,
		Password: hashed,
		Active:   true,
	}
	admin.SetPermissions(domain.AllPermissions())

	if err := s.stores.Users.Create(ctx, admin); err != nil {
		return err
	}

	log.Info("admin user created")
	return nil
}
