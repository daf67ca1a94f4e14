package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/pkg/logger"
)

// CredentialStorage handles login records
type CredentialStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewCredentialStorage creates a new credential storage
func NewCredentialStorage(db *DB, logger *logger.Logger) *CredentialStorage {
	return &CredentialStorage{
		db:     db,
		logger: logger.Named("credentials"),
	}
}

// LoginExists reports whether a credential with the login exists
func (s *CredentialStorage) LoginExists(ctx context.Context, login string) (bool, error) {
	var id int64
	err := s.db.QueryRow(ctx, `SELECT id FROM auth WHERE login = ?`, login).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up login: %w", err)
	}
	return true, nil
}

// Find returns the credential for a login together with the helicopter of
// its linked pilot
func (s *CredentialStorage) Find(ctx context.Context, login string) (*model.Credential, error) {
	row := s.db.QueryRow(ctx, `
		SELECT a.id, a.login, a.password, a.role, a.pilot_id, p.helicopter_id
		FROM auth a
		LEFT JOIN pilot p ON p.id = a.pilot_id
		WHERE a.login = ?`,
		login,
	)

	var (
		cred         model.Credential
		role         string
		pilotID      sql.NullInt64
		helicopterID sql.NullInt64
	)
	if err := row.Scan(&cred.ID, &cred.Login, &cred.Password, &role, &pilotID, &helicopterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}

	parsed, err := model.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("failed to read credential %s: %w", login, err)
	}
	cred.Role = parsed
	cred.PilotID = pilotID.Int64
	cred.HelicopterID = helicopterID.Int64
	return &cred, nil
}

// Insert stores a credential. passwordHash is written as given.
func (s *CredentialStorage) Insert(ctx context.Context, login, passwordHash string, role model.Role, pilotID int64) (int64, error) {
	var pilot sql.NullInt64
	if pilotID > 0 {
		pilot = sql.NullInt64{Int64: pilotID, Valid: true}
	}

	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO auth (login, password, role, pilot_id) VALUES (?, ?, ?, ?) RETURNING id`,
		login, passwordHash, string(role), pilot,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert credential: %w", err)
	}

	s.logger.Info("Credential created", logger.String("login", login), logger.String("role", string(role)))
	return id, nil
}
