// Package shell wires authentication to the role-specific command sets and
// runs sessions until the operator ends the program.
package shell

import (
	"context"
	"errors"

	"github.com/yegors/heliflight/internal/auth"
	"github.com/yegors/heliflight/internal/command"
	"github.com/yegors/heliflight/internal/console"
	"github.com/yegors/heliflight/internal/flight"
	"github.com/yegors/heliflight/internal/report"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/pkg/logger"
)

const (
	endToken  = "/end"
	helpToken = "/help"
	backToken = "/back"
)

const banner = `
    __  __     ___ ______ _ _       __    __
   / / / /__  / (_) ____/(_) /___ _/ /_  / /_
  / /_/ / _ \/ / / /_   / / / __ '/ __ \/ __/
 / __  /  __/ / / __/  / / / /_/ / / / / /_
/_/ /_/\___/_/_/_/    /_/_/\__, /_/ /_/\__/
                          /____/
`

const loginHelp = `Available commands:
 - /end - end program
 - /help - check commands
`

const passwordHelp = `Available commands:
 - /back - back to login
 - /end - end program
 - /help - check available commands
`

// Options tunes the shell
type Options struct {
	Banner bool
}

// Shell authenticates operators and dispatches their sessions
type Shell struct {
	con    Console
	auth   *auth.Authenticator
	admin  *Admin
	pilot  *Pilot
	opts   Options
	logger *logger.Logger
}

// New creates a shell over the console and database
func New(con Console, db *storage.DB, opts Options, log *logger.Logger) *Shell {
	flights := flight.NewService(db, log)
	reports := report.NewEngine(db, flights, con, log)

	return &Shell{
		con:    con,
		auth:   auth.NewAuthenticator(db, log),
		admin:  NewAdmin(con, reports, flights, log),
		pilot:  NewPilot(con, reports, log),
		opts:   opts,
		logger: log.Named("shell"),
	}
}

// Run signs operators in and runs their sessions until /end or end of input
func (s *Shell) Run(ctx context.Context) error {
	if s.opts.Banner {
		s.con.Print(banner)
	}

	for {
		session, err := s.login(ctx)
		if err != nil {
			return err
		}
		if session == nil {
			s.logger.Info("Program ended")
			return nil
		}

		log := s.logger.WithSession(session.ID.String())
		log.Info("Session started", logger.String("login", session.Login), logger.String("role", string(session.Role)))

		if err := command.Run(ctx, s.con, s.handlerFor(session), session); err != nil {
			return err
		}
		log.Info("Session ended")

		if err := ctx.Err(); err != nil {
			return nil
		}
	}
}

// handlerFor selects the command set governing the session
func (s *Shell) handlerFor(session *auth.Session) command.Handler {
	if session.IsAdmin() {
		return s.admin
	}
	return s.pilot
}

// login runs the login and password prompts. A nil session with a nil error
// means the operator ended the program or the input ended.
func (s *Shell) login(ctx context.Context) (*auth.Session, error) {
	for {
		login, ok, err := s.readLogin(ctx)
		if err != nil || !ok {
			return nil, err
		}

		session, state, err := s.readPassword(ctx, login)
		if err != nil {
			return nil, err
		}
		switch state {
		case signedIn:
			s.con.Print("Successful sign in!")
			return session, nil
		case ended:
			return nil, nil
		}
	}
}

// readLogin returns ok=false when the program should end
func (s *Shell) readLogin(ctx context.Context) (string, bool, error) {
	for {
		if ctx.Err() != nil {
			return "", false, nil
		}

		var lookupErr error
		input, err := s.con.Read("Input login:", "Unknown login", func(v string) bool {
			if v == endToken || v == helpToken {
				return true
			}
			exists, err := s.auth.LoginExists(ctx, v)
			if err != nil {
				lookupErr = err
				return true
			}
			return exists
		})
		if err != nil {
			if errors.Is(err, console.ErrClosed) || ctx.Err() != nil {
				return "", false, nil
			}
			return "", false, err
		}

		switch {
		case ctx.Err() != nil:
			return "", false, nil
		case lookupErr != nil:
			s.logger.Error("Failed to look up login", logger.Error(lookupErr))
			s.con.Printf("Database error: %v", lookupErr)
		case input == endToken:
			return "", false, nil
		case input == helpToken:
			s.con.Print(loginHelp)
		default:
			return input, true, nil
		}
	}
}

type passwordState int

const (
	signedIn passwordState = iota
	backToLogin
	ended
)

func (s *Shell) readPassword(ctx context.Context, login string) (*auth.Session, passwordState, error) {
	for {
		if ctx.Err() != nil {
			return nil, ended, nil
		}

		var (
			session *auth.Session
			authErr error
		)
		input, err := s.con.ReadSecret("Input password:", "Wrong password", func(v string) bool {
			if v == backToken || v == endToken || v == helpToken {
				return true
			}
			sess, err := s.auth.Authenticate(ctx, login, v)
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return false
			}
			session, authErr = sess, err
			return true
		})
		if err != nil {
			if errors.Is(err, console.ErrClosed) || ctx.Err() != nil {
				return nil, ended, nil
			}
			return nil, ended, err
		}

		switch {
		case ctx.Err() != nil:
			return nil, ended, nil
		case input == backToken:
			return nil, backToLogin, nil
		case input == endToken:
			return nil, ended, nil
		case input == helpToken:
			s.con.Print(passwordHelp)
		case errors.Is(authErr, auth.ErrUnboundPilot):
			s.con.Print("This pilot account is not assigned to a helicopter crew.")
			return nil, backToLogin, nil
		case authErr != nil:
			s.logger.Error("Failed to authenticate", logger.Error(authErr))
			s.con.Printf("Database error: %v", authErr)
			return nil, backToLogin, nil
		default:
			return session, signedIn, nil
		}
	}
}
