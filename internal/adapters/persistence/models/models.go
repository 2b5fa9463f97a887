package models

import (
	"time"

	"bookloan/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table / collection
type User struct {
	ID              string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name            string    `gorm:"size:100;not null" bson:"name" json:"name"`
	Email           string    `gorm:"uniqueIndex;size:191;not null" bson:"email" json:"email"`
	Password        string    `gorm:"size:255;not null" bson:"password" json:"-"`
	Active          bool      `gorm:"not null" bson:"active" json:"active"`
	CanCreateBooks  bool      `gorm:"not null;default:false" bson:"can_create_books" json:"canCreateBooks"`
	CanEditBooks    bool      `gorm:"not null;default:false" bson:"can_edit_books" json:"canEditBooks"`
	CanDisableBooks bool      `gorm:"not null;default:false" bson:"can_disable_books" json:"canDisableBooks"`
	CanEditUsers    bool      `gorm:"not null;default:false" bson:"can_edit_users" json:"canEditUsers"`
	CanDisableUsers bool      `gorm:"not null;default:false" bson:"can_disable_users" json:"canDisableUsers"`
	CreatedAt       time.Time `gorm:"autoCreateTime" bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" bson:"updated_at" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Permissions returns the capability flags of the user as one value
func (u *User) Permissions() domain.Permissions {
	return domain.Permissions{
		CanCreateBooks:  u.CanCreateBooks,
		CanEditBooks:    u.CanEditBooks,
		CanDisableBooks: u.CanDisableBooks,
		CanEditUsers:    u.CanEditUsers,
		CanDisableUsers: u.CanDisableUsers,
	}
}

// SetPermissions overwrites all five capability flags
func (u *User) SetPermissions(p domain.Permissions) {
	u.CanCreateBooks = p.CanCreateBooks
	u.CanEditBooks = p.CanEditBooks
	u.CanDisableBooks = p.CanDisableBooks
	u.CanEditUsers = p.CanEditUsers
	u.CanDisableUsers = p.CanDisableUsers
}

// UserResponse DTO. Never carries the password hash.
type UserResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Active      bool               `json:"active"`
	Permissions domain.Permissions `json:"permissions"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Active:      u.Active,
		Permissions: u.Permissions(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UserSummary is the short user form returned on login
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) ToSummary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ============================================================
// Catalog
// ============================================================

// Book represents books table / collection
type Book struct {
	ID          string     `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Title       string     `gorm:"size:255;not null" bson:"title" json:"title"`
	Author      string     `gorm:"size:255;not null" bson:"author" json:"author"`
	Genre       string     `gorm:"size:100" bson:"genre,omitempty" json:"genre,omitempty"`
	Publisher   string     `gorm:"size:255" bson:"publisher,omitempty" json:"publisher,omitempty"`
	PublishedAt *time.Time `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	Available   bool       `gorm:"not null" bson:"available" json:"available"`
	Active      bool       `gorm:"not null;index" bson:"active" json:"active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" bson:"updated_at" json:"updatedAt"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Reservation links a user and a book. Schema only: no service exposes it yet.
type Reservation struct {
	ID          string     `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID      string     `gorm:"size:36;not null;index" bson:"user_id" json:"userId"`
	BookID      string     `gorm:"size:36;not null;index" bson:"book_id" json:"bookId"`
	ReservedAt  time.Time  `gorm:"not null" bson:"reserved_at" json:"reservedAt"`
	DeliveredAt *time.Time `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" bson:"updated_at" json:"updatedAt"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" bson:"-" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT" bson:"-" json:"book,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.ReservedAt.IsZero() {
		r.ReservedAt = time.Now()
	}
	return nil
}

// ============================================================
// Tokens
// ============================================================

// RevokedToken is a denylisted token ID, kept until the token would have expired
type RevokedToken struct {
	TokenID   string    `gorm:"primaryKey;size:36" bson:"_id" json:"token_id"`
	UserID    string    `gorm:"size:36;index;not null" bson:"user_id" json:"user_id"`
	ExpiresAt time.Time `gorm:"index;not null" bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}

// IsExpired reports whether the revoked token is past its own expiry
func (rt *RevokedToken) IsExpired(now time.Time) bool {
	return now.After(rt.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Book{},
		&Reservation{},
		&RevokedToken{},
	)
}
