package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fedenh3/proyecto-cava/internal/domain/user"
	idgen "github.com/fedenh3/proyecto-cava/internal/platform/id"
)

const sessionTTL = 12 * time.Hour

// Session is an authenticated login. Tokens are opaque and live in
// memory only: a restart logs everyone out, which is acceptable for a
// single-operator tool.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService owns login, session verification and user management.
type AuthService struct {
	userRepo user.Repository
	tokens   idgen.Generator

	mu       sync.Mutex
	sessions map[string]Session
}

func NewAuthService(userRepo user.Repository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   idgen.NewRandomGenerator(),
		sessions: make(map[string]Session),
	}
}

// Login checks the password against the stored bcrypt hash and issues
// a session token. Unknown users and bad passwords report the same
// error.
func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	u, found, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return Session{}, fmt.Errorf("find user: %w", err)
	}
	if !found {
		return Session{}, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}

	token, err := s.tokens.NewID()
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}

	session := Session{
		Token:     token,
		Username:  u.Username,
		Role:      u.Role,
		Name:      u.Name,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()
	return session, nil
}

// Verify resolves a bearer token to its session. Expired sessions are
// dropped on sight.
func (s *AuthService) Verify(token string) (Session, error) {
	if token == "" {
		return Session{}, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return Session{}, fmt.Errorf("%w: unknown token", ErrUnauthorized)
	}
	if time.Now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return Session{}, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}
	return session, nil
}

// Logout drops a session; unknown tokens are a no-op.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CreateUser registers a new account. Only admins may call it.
func (s *AuthService) CreateUser(ctx context.Context, actor Session, username, password, role, name string) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.CreateUser")
	defer span.End()

	if actor.Role != user.RoleAdmin {
		return 0, fmt.Errorf("%w: admin role required", ErrUnauthorized)
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	_, exists, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("find user: %w", err)
	}
	if exists {
		return 0, fmt.Errorf("%w: username %s is taken", ErrInvalidInput, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	u := user.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
	}
	if err := u.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.userRepo.Insert(ctx, u)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// EnsureAdmin seeds the initial admin account when no user with that
// name exists yet. The ETL calls it once per run so a fresh database
// is always reachable.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	_, exists, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find admin user: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := s.userRepo.Insert(ctx, user.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
