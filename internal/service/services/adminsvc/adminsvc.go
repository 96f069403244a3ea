package adminsvc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/styleaura/storefront/internal/dal/interfaces/isessionrepo"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const defaultSessionTTL = 24 * time.Hour

// AdminService authenticates the single admin account and tracks its sessions.
type AdminService struct {
	email    string
	hash     []byte
	sessions isessionrepo.ISessionRepository
	ttl      time.Duration
}

// option is a function that configures the AdminService.
type option func(*AdminService)

func MustNewAdminService(opts ...option) *AdminService {
	s := &AdminService{ttl: defaultSessionTTL}
	for _, opt := range opts {
		opt(s)
	}

	if s.email == "" || len(s.hash) == 0 {
		panic("adminsvc: admin credentials are not configured")
	}
	if s.sessions == nil {
		panic("adminsvc: missing session repository")
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCredentials(email string, passwordHash []byte) option {
	return func(s *AdminService) {
		s.email = strings.TrimSpace(email)
		s.hash = passwordHash
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithSessionRepository(repo isessionrepo.ISessionRepository) option {
	return func(s *AdminService) {
		s.sessions = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithSessionTTL(ttl time.Duration) option {
	return func(s *AdminService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// MustCredentialsFromEnv reads ADMIN_EMAIL with ADMIN_PASSWORD_HASH, or hashes
// ADMIN_PASSWORD when no hash is given.
func MustCredentialsFromEnv() (string, []byte) {
	email := os.Getenv("ADMIN_EMAIL")
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		return email, []byte(hash)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		panic("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	return email, hash
}

// Login checks the credential pair and opens a session.
func (s *AdminService) Login(ctx context.Context, email, password string) (string, error) {
	emailOK := strings.EqualFold(strings.TrimSpace(email), s.email)
	// Compare even on an email mismatch so both paths cost the same.
	passErr := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
	if !emailOK || passErr != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, s.ttl); err != nil {
		return "", fmt.Errorf("failed to open session: %w", err)
	}

	return token, nil
}

// Logout ends the session. Unknown tokens are ignored.
func (s *AdminService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	return s.sessions.Delete(ctx, token)
}

func (s *AdminService) IsAdmin(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	return s.sessions.Exists(ctx, token)
}

// SessionTTL is the lifetime of new sessions.
func (s *AdminService) SessionTTL() time.Duration {
	return s.ttl
}
