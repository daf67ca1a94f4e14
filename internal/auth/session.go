// Package auth verifies credentials and resolves the session scope.
package auth

import (
	"github.com/google/uuid"

	"github.com/yegors/heliflight/internal/model"
)

// Session is the in-memory identity of one signed-in operator
type Session struct {
	ID           uuid.UUID
	Login        string
	Role         model.Role
	PilotID      int64 // zero for admins
	HelicopterID int64 // zero for admins
}

// NewSession creates a session for a verified credential
func NewSession(cred *model.Credential) *Session {
	return &Session{
		ID:           uuid.New(),
		Login:        cred.Login,
		Role:         cred.Role,
		PilotID:      cred.PilotID,
		HelicopterID: cred.HelicopterID,
	}
}

// IsAdmin reports whether the session has unrestricted access
func (s *Session) IsAdmin() bool {
	return s.Role == model.RoleAdmin
}
