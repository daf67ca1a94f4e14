package shell

import (
	"errors"

	"github.com/yegors/heliflight/internal/auth"
	"github.com/yegors/heliflight/internal/command"
	"github.com/yegors/heliflight/internal/console"
	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/internal/validate"
	"github.com/yegors/heliflight/pkg/logger"
)

// Console is the prompt surface of a session
type Console interface {
	command.Console
	ReadSecret(prompt, errMsg string, accept func(string) bool) (string, error)
}

// prompter runs the multi-step workflows of a handler set
type prompter struct {
	con    Console
	logger *logger.Logger
}

// field reads one value. ok is false when the operator entered the
// navigation token or the input ended; the workflow must stop.
func (p prompter) field(prompt, errMsg string, accept validate.Predicate) (string, bool) {
	v, err := p.con.Read(prompt, errMsg, accept)
	if err != nil {
		if !errors.Is(err, console.ErrClosed) {
			p.logger.Error("Failed to read input", logger.Error(err))
		}
		return "", false
	}
	if validate.IsBack(v) {
		return "", false
	}
	return v, true
}

// id reads a positive identifier
func (p prompter) id(prompt string) (int64, bool) {
	raw, ok := p.field(prompt, "Invalid ID.", validate.Field(validate.ID))
	if !ok {
		return 0, false
	}
	id, _ := validate.ParseID(raw)
	return id, true
}

// period reads an inclusive date range whose end is not before its start
func (p prompter) period() (storage.Period, bool) {
	from, ok := p.field("Start date of the period (YYYY-MM-DD or /back):", "Invalid date format.", validate.Field(validate.Date))
	if !ok {
		return storage.Period{}, false
	}
	to, ok := p.field("End date of the period (YYYY-MM-DD or /back):",
		"Invalid date format or the end date is before the start date.", validate.DateNotBefore(model.Date(from)))
	if !ok {
		return storage.Period{}, false
	}
	return storage.Period{From: model.Date(from), To: model.Date(to)}, true
}

// fail reports a data-access fault without ending the session
func (p prompter) fail(session *auth.Session, op string, err error) {
	p.logger.WithSession(session.ID.String()).Error("Operation failed",
		logger.String("operation", op), logger.Error(err))
	p.con.Printf("Database error: %v", err)
	p.con.Print("")
}
