package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"unibook/backend/internal/book/domain"
)

// PostgresBookRepository implements BookRepository on database/sql with the pgx
// driver. Requirements, outline, and chapters are stored as JSONB documents.
type PostgresBookRepository struct {
	db *sql.DB
}

func NewPostgresBookRepository(db *sql.DB) *PostgresBookRepository {
	return &PostgresBookRepository{db: db}
}

const bookColumns = `id, user_id, title, cover_image, requirements, outline, chapters, status, created_at_ms`

func (r *PostgresBookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	return scanBook(row)
}

func (r *PostgresBookRepository) Create(ctx context.Context, b *domain.Book) error {
	requirements, outline, chapters, err := marshalDocs(b)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO books (id, user_id, title, cover_image, requirements, outline, chapters, status, created_at_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.UserID, b.Title, b.CoverImage, requirements, outline, chapters, b.Status, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *PostgresBookRepository) Update(ctx context.Context, b *domain.Book) error {
	requirements, outline, chapters, err := marshalDocs(b)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE books
		 SET title = $2, cover_image = $3, requirements = $4, outline = $5, chapters = $6, status = $7
		 WHERE id = $1`,
		b.ID, b.Title, b.CoverImage, requirements, outline, chapters, b.Status)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresBookRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func (r *PostgresBookRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE user_id = $1 ORDER BY created_at_ms DESC, id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list books by user: %w", err)
	}
	return collectBooks(rows)
}

func (r *PostgresBookRepository) ListAll(ctx context.Context, offset, limit int) ([]*domain.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at_ms DESC, id OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return collectBooks(rows)
}

func collectBooks(rows *sql.Rows) ([]*domain.Book, error) {
	defer rows.Close()
	books := make([]*domain.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var (
		b            domain.Book
		requirements []byte
		outline      []byte
		chapters     []byte
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.CoverImage,
		&requirements, &outline, &chapters, &b.Status, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan book: %w", err)
	}
	if len(requirements) > 0 {
		if err := json.Unmarshal(requirements, &b.Requirements); err != nil {
			return nil, fmt.Errorf("decode requirements: %w", err)
		}
	}
	if err := json.Unmarshal(outline, &b.Outline); err != nil {
		return nil, fmt.Errorf("decode outline: %w", err)
	}
	if err := json.Unmarshal(chapters, &b.Chapters); err != nil {
		return nil, fmt.Errorf("decode chapters: %w", err)
	}
	if b.Outline == nil {
		b.Outline = []domain.OutlineEntry{}
	}
	if b.Chapters == nil {
		b.Chapters = []domain.Chapter{}
	}
	return &b, nil
}

func marshalDocs(b *domain.Book) (requirements, outline, chapters []byte, err error) {
	if b.Requirements != nil {
		requirements, err = json.Marshal(b.Requirements)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encode requirements: %w", err)
		}
	}
	if b.Outline == nil {
		outline = []byte(`[]`)
	} else if outline, err = json.Marshal(b.Outline); err != nil {
		return nil, nil, nil, fmt.Errorf("encode outline: %w", err)
	}
	if b.Chapters == nil {
		chapters = []byte(`[]`)
	} else if chapters, err = json.Marshal(b.Chapters); err != nil {
		return nil, nil, nil, fmt.Errorf("encode chapters: %w", err)
	}
	return requirements, outline, chapters, nil
}
