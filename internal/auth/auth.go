package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/pkg/logger"
)

var (
	// ErrInvalidCredentials is returned for an unknown login or a wrong password
	ErrInvalidCredentials = errors.New("invalid login or password")
	// ErrUnboundPilot is returned for a pilot credential without a pilot or helicopter
	ErrUnboundPilot = errors.New("pilot credential is not bound to a helicopter crew")
)

// Authenticator checks logins against the auth table
type Authenticator struct {
	credentials *storage.CredentialStorage
	logger      *logger.Logger
}

// NewAuthenticator creates an authenticator over the database
func NewAuthenticator(db *storage.DB, log *logger.Logger) *Authenticator {
	return &Authenticator{
		credentials: storage.NewCredentialStorage(db, log),
		logger:      log.Named("auth"),
	}
}

// LoginExists reports whether the login is known
func (a *Authenticator) LoginExists(ctx context.Context, login string) (bool, error) {
	return a.credentials.LoginExists(ctx, login)
}

// Authenticate verifies the password and resolves the role and scope
func (a *Authenticator) Authenticate(ctx context.Context, login, password string) (*Session, error) {
	cred, err := a.credentials.Find(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrCredentialNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(cred.Password, password) {
		a.logger.Debug("Wrong password", logger.String("login", login))
		return nil, ErrInvalidCredentials
	}

	if cred.Role == model.RolePilot && (cred.PilotID == 0 || cred.HelicopterID == 0) {
		a.logger.Warn("Pilot credential without crew", logger.String("login", login))
		return nil, ErrUnboundPilot
	}

	session := NewSession(cred)
	a.logger.Info("Signed in",
		logger.String("session_id", session.ID.String()),
		logger.String("login", login),
		logger.String("role", string(session.Role)))
	return session, nil
}

// CreateAdmin stores an ADMIN credential with a bcrypt hash of the password
func (a *Authenticator) CreateAdmin(ctx context.Context, login, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := a.credentials.Insert(ctx, login, hash, model.RoleAdmin, 0); err != nil {
		return err
	}
	return nil
}

// HashPassword returns a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a candidate with the stored value, which is either a
// bcrypt hash or a plain text password
func CheckPassword(stored, candidate string) bool {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
