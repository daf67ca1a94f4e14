package command_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/heliflight/internal/auth"
	"github.com/yegors/heliflight/internal/command"
	"github.com/yegors/heliflight/internal/console"
)

type handler struct {
	registry *command.Registry
}

func (h handler) Commands() *command.Registry { return h.registry }

func TestRegistryOrder(t *testing.T) {
	r := command.NewRegistry().
		Register("/zeta", "last letter", nil).
		Register("/alpha", "", nil).
		Register(command.Out, "log out", command.Logout)

	assert.Equal(t, []command.Token{"/zeta", "/alpha", command.Out}, r.Tokens())
	assert.Equal(t, "Available commands:\n - /zeta - last letter\n - /alpha\n - /out - log out\n", r.HelpText())
	assert.True(t, r.Has("/alpha"))
	assert.False(t, r.Has("/ALPHA"))
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := command.NewRegistry().Register(command.Help, "", nil)
	assert.Panics(t, func() { r.Register(command.Help, "", nil) })
}

func TestRunDispatchesUntilLogout(t *testing.T) {
	var out bytes.Buffer
	con := console.New(strings.NewReader("/nope\n/ping\n/ping\n/out\n/ping\n"), &out)

	pings := 0
	r := command.NewRegistry()
	r.Register("/ping", "", func(context.Context, *auth.Session) bool {
		pings++
		return false
	})
	r.Register(command.Help, "", command.HelpAction(r, con))
	r.Register(command.Out, "", command.Logout)

	require.NoError(t, command.Run(context.Background(), con, handler{r}, &auth.Session{}))
	assert.Equal(t, 2, pings)
	assert.Equal(t, 1, strings.Count(out.String(), "Unknown command"))
}

func TestRunEndsOnBackAndEOF(t *testing.T) {
	var out bytes.Buffer
	r := command.NewRegistry().Register(command.Out, "", command.Logout)

	con := console.New(strings.NewReader(" /BACK \n"), &out)
	require.NoError(t, command.Run(context.Background(), con, handler{r}, &auth.Session{}))
	assert.Contains(t, out.String(), "Returning to the login prompt.")

	con = console.New(strings.NewReader(""), &out)
	require.NoError(t, command.Run(context.Background(), con, handler{r}, &auth.Session{}))
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	var out bytes.Buffer
	con := console.New(strings.NewReader("/ping\n/ping\n/ping\n"), &out)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pings := 0
	r := command.NewRegistry().Register("/ping", "", func(context.Context, *auth.Session) bool {
		pings++
		cancel()
		return false
	})

	require.NoError(t, command.Run(ctx, con, handler{r}, &auth.Session{}))
	assert.Equal(t, 1, pings)
	assert.Equal(t, 1, strings.Count(out.String(), "Input command:"))
}

func TestHelpAction(t *testing.T) {
	var out bytes.Buffer
	con := console.New(strings.NewReader(""), &out)
	r := command.NewRegistry()
	r.Register(command.Help, "get available commands", command.HelpAction(r, con))

	action, ok := r.Lookup(string(command.Help))
	require.True(t, ok)
	assert.False(t, action(context.Background(), nil))
	assert.Contains(t, out.String(), " - /help - get available commands")
}
