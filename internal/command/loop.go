package command

import (
	"context"
	"errors"

	"github.com/yegors/heliflight/internal/auth"
	"github.com/yegors/heliflight/internal/console"
	"github.com/yegors/heliflight/internal/validate"
)

// Console is the prompt surface the loop reads commands from
type Console interface {
	console.Printer
	Read(prompt, errMsg string, accept func(string) bool) (string, error)
}

// Run reads commands until an action ends the session, the operator enters
// the navigation token, the input is exhausted or ctx is cancelled
func Run(ctx context.Context, con Console, h Handler, session *auth.Session) error {
	registry := h.Commands()
	accept := func(s string) bool {
		return registry.Has(s) || validate.IsBack(s)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := con.Read("Input command:", "Unknown command", accept)
		if err != nil {
			if errors.Is(err, console.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		if validate.IsBack(input) {
			con.Print("Returning to the login prompt.")
			return nil
		}

		action, _ := registry.Lookup(input)
		if action(ctx, session) {
			return nil
		}
	}
}
