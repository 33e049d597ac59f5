// Package repository persists users.
package repository

import (
	"context"

	"unibook/backend/internal/user/domain"
)

// UserRepository is the persistence contract for users. Lookups return
// (nil, nil) when no row matches.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
}
