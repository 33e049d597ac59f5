// Package service implements registration, email verification, login, and the
// admin user operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"unibook/backend/internal/audit"
	"unibook/backend/internal/devcode"
	"unibook/backend/internal/mailer"
	"unibook/backend/internal/security"
	"unibook/backend/internal/user/domain"
	"unibook/backend/internal/user/repository"
	"unibook/backend/internal/verification"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrNotVerified            = errors.New("email not verified")
	ErrInvalidCode            = errors.New("invalid verification code")
	ErrCodeExpired            = errors.New("verification code expired")
	ErrUserNotFound           = errors.New("user not found")
	ErrSelfDeletion           = errors.New("cannot delete own account")
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// AuthResult is the successful login payload.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Service implements the identity operations. Admin status is derived from the
// configured allow-list at login time and persisted; it is never revoked.
type Service struct {
	users       repository.UserRepository
	hasher      *security.Hasher
	tokens      *security.TokenProvider
	sender      mailer.Sender
	devCodes    *devcode.Store
	audit       *audit.Logger
	adminEmails map[string]bool
	codeTTL     time.Duration
	log         *zap.Logger
	nowF        func() time.Time
}

// NewService wires the identity service. devCodes may be nil when the dev code
// endpoint is disabled; auditLogger may be nil.
func NewService(
	users repository.UserRepository,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	sender mailer.Sender,
	devCodes *devcode.Store,
	auditLogger *audit.Logger,
	adminEmails []string,
	codeTTL time.Duration,
	log *zap.Logger,
) *Service {
	allow := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		if email != "" {
			allow[email] = true
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		sender:      sender,
		devCodes:    devCodes,
		audit:       auditLogger,
		adminEmails: allow,
		codeTTL:     codeTTL,
		log:         log,
		nowF:        time.Now,
	}
}

// Register creates an unverified account and dispatches the verification code.
// Mail delivery happens on a background goroutine and never blocks the caller.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	code, err := verification.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	now := s.nowF().UTC()
	expires := now.Add(s.codeTTL)
	u := &domain.User{
		ID:                  uuid.NewString(),
		Email:               email,
		PasswordHash:        hash,
		Name:                name,
		IsVerified:          false,
		VerificationCode:    code,
		VerificationExpires: &expires,
		IsAdmin:             false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.dispatchCode(u.Email, code)
	s.audit.Record(ctx, u.ID, "register", "user:"+u.ID, "")
	return u, nil
}

// Verify marks the account verified when the submitted code matches and has
// not expired, then issues a bearer token. Verifying an already-verified
// account skips the code checks and issues a fresh token, so a replayed
// verify request succeeds.
func (s *Service) Verify(ctx context.Context, email, code string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.IsVerified {
		if !verification.Equal(u.VerificationCode, code) {
			return nil, ErrInvalidCode
		}
		if u.VerificationExpires == nil || s.nowF().UTC().After(*u.VerificationExpires) {
			return nil, ErrCodeExpired
		}
		u.IsVerified = true
		u.VerificationCode = ""
		u.VerificationExpires = nil
		if err := s.users.Update(ctx, u); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		s.audit.Record(ctx, u.ID, "verify", "user:"+u.ID, "")
	}
	token, _, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

// ResendCode issues a fresh code for an unverified account, replacing the old
// one. Already-verified accounts are left alone.
func (s *Service) ResendCode(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup email: %w", err)
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.IsVerified {
		return nil
	}

	code, err := verification.Generate()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	expires := s.nowF().UTC().Add(s.codeTTL)
	u.VerificationCode = code
	u.VerificationExpires = &expires
	if err := s.users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.dispatchCode(u.Email, code)
	s.audit.Record(ctx, u.ID, "resend_code", "user:"+u.ID, "")
	return nil
}

// Login checks credentials and issues a bearer token. Unknown emails and wrong
// passwords produce the same error. An email on the admin allow-list is
// promoted to admin on first successful login.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if u == nil {
		s.audit.Record(ctx, "", "login_failure", "email:"+email, "unknown email")
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.audit.Record(ctx, u.ID, "login_failure", "user:"+u.ID, "bad password")
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, ErrNotVerified
	}

	if s.adminEmails[u.Email] && !u.IsAdmin {
		u.IsAdmin = true
		if err := s.users.Update(ctx, u); err != nil {
			return nil, fmt.Errorf("promote admin: %w", err)
		}
		s.audit.Record(ctx, u.ID, "admin_promote", "user:"+u.ID, "")
	}

	token, _, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.audit.Record(ctx, u.ID, "login_success", "user:"+u.ID, "")
	return &AuthResult{Token: token, User: u}, nil
}

// DeleteUser removes a user and, via cascade, their books. Admins cannot
// delete their own account.
func (s *Service) DeleteUser(ctx context.Context, actor *domain.User, targetID string) error {
	if actor != nil && actor.ID == targetID {
		return ErrSelfDeletion
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	s.audit.Record(ctx, actorID, "user_delete", "user:"+targetID, "email="+target.Email)
	return nil
}

// ListUsers returns a page of users. skip below zero clamps to zero; limit at
// or below zero, or above the cap, clamps to 100.
func (s *Service) ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	users, err := s.users.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DevCode returns the pending verification code for email from the in-memory
// dev store. Returns false when the dev store is disabled or has no code.
func (s *Service) DevCode(email string) (string, bool) {
	if s.devCodes == nil {
		return "", false
	}
	return s.devCodes.Get(email)
}

func (s *Service) dispatchCode(email, code string) {
	if s.devCodes != nil {
		s.devCodes.Put(email, code)
	}
	mailer.SendAsync(s.sender, s.log, email, code)
}
