// Package service implements book CRUD with per-resource ownership checks.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"unibook/backend/internal/audit"
	"unibook/backend/internal/authz"
	"unibook/backend/internal/book/domain"
	"unibook/backend/internal/book/repository"
	userdomain "unibook/backend/internal/user/domain"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrTitleRequired = errors.New("title is required")
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// UserGetter resolves book owners for the admin listing.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// OwnerSummary is the owner block attached to books on the admin surface.
type OwnerSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// BookWithOwner is a book enriched with its owner. User is null when the
// owning account no longer exists.
type BookWithOwner struct {
	*domain.Book
	User *OwnerSummary `json:"user"`
}

// Service implements the book operations. Every read, update, and delete of a
// single book passes through the ownership gate; existence is checked first,
// so a missing book reports not-found even to strangers.
type Service struct {
	books repository.BookRepository
	users UserGetter
	gate  *authz.Gate
	audit *audit.Logger
	nowF  func() time.Time
}

func NewService(books repository.BookRepository, users UserGetter, gate *authz.Gate, auditLogger *audit.Logger) *Service {
	return &Service{
		books: books,
		users: users,
		gate:  gate,
		audit: auditLogger,
		nowF:  time.Now,
	}
}

// Create stores a new book owned by the actor. The server stamps id, owner,
// and creation time; nothing in the payload can claim another owner.
func (s *Service) Create(ctx context.Context, actor *userdomain.User, in *domain.CreateInput) (*domain.Book, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	b := &domain.Book{
		ID:           uuid.NewString(),
		UserID:       actor.ID,
		Title:        in.Title,
		CoverImage:   in.CoverImage,
		Requirements: in.Requirements,
		Outline:      in.Outline,
		Chapters:     in.Chapters,
		Status:       in.Status,
		CreatedAt:    s.nowF().UTC().UnixMilli(),
	}
	if b.Status == "" {
		b.Status = domain.StatusDraft
	}
	if b.Outline == nil {
		b.Outline = []domain.OutlineEntry{}
	}
	if b.Chapters == nil {
		b.Chapters = []domain.Chapter{}
	}
	if err := s.books.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	s.audit.Record(ctx, actor.ID, "book_create", "book:"+b.ID, "")
	return b, nil
}

// Get returns one book. Only the owner may read it.
func (s *Service) Get(ctx context.Context, actor *userdomain.User, id string) (*domain.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	if err := s.gate.CanAccess(ctx, actor.ID, b.UserID, false); err != nil {
		return nil, err
	}
	return b, nil
}

// ListMine returns the actor's books, newest first.
func (s *Service) ListMine(ctx context.Context, actor *userdomain.User) ([]*domain.Book, error) {
	books, err := s.books.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update applies a partial update to the actor's book. Fields absent from the
// patch keep their values; fields present with null are cleared. Admins get no
// special treatment here.
func (s *Service) Update(ctx context.Context, actor *userdomain.User, id string, patch *domain.Patch) (*domain.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	if err := s.gate.CanAccess(ctx, actor.ID, b.UserID, false); err != nil {
		return nil, err
	}
	patch.Apply(b)
	if strings.TrimSpace(b.Title) == "" {
		return nil, ErrTitleRequired
	}
	if err := s.books.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	s.audit.Record(ctx, actor.ID, "book_update", "book:"+b.ID, "")
	return b, nil
}

// Delete removes a book. Owners can delete their own; admins can delete any.
func (s *Service) Delete(ctx context.Context, actor *userdomain.User, id string) error {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}
	if b == nil {
		return ErrBookNotFound
	}
	if err := s.gate.CanAccess(ctx, actor.ID, b.UserID, actor.IsAdmin); err != nil {
		return err
	}
	if err := s.books.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	action := "book_delete"
	if actor.IsAdmin && actor.ID != b.UserID {
		action = "book_delete_admin"
	}
	s.audit.Record(ctx, actor.ID, action, "book:"+id, "")
	return nil
}

// ListAllWithOwners returns a page of all books for the admin surface, each
// enriched with its owner. Owners are resolved once per page.
func (s *Service) ListAllWithOwners(ctx context.Context, skip, limit int) ([]*BookWithOwner, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	books, err := s.books.ListAll(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	owners := make(map[string]*OwnerSummary)
	out := make([]*BookWithOwner, 0, len(books))
	for _, b := range books {
		owner, cached := owners[b.UserID]
		if !cached {
			u, err := s.users.GetByID(ctx, b.UserID)
			if err != nil {
				return nil, fmt.Errorf("resolve owner: %w", err)
			}
			if u != nil {
				owner = &OwnerSummary{ID: u.ID, Email: u.Email, Name: u.Name}
			}
			owners[b.UserID] = owner
		}
		out = append(out, &BookWithOwner{Book: b, User: owner})
	}
	return out, nil
}
