// Package repository persists books.
package repository

import (
	"context"

	"unibook/backend/internal/book/domain"
)

// BookRepository is the persistence contract for books. Lookups return
// (nil, nil) when no row matches.
type BookRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	Create(ctx context.Context, b *domain.Book) error
	Update(ctx context.Context, b *domain.Book) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Book, error)
	ListAll(ctx context.Context, offset, limit int) ([]*domain.Book, error)
}
