package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRepromptsUntilAccepted(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("abc\n  12  \n"), &out)

	got, err := c.Read("Number:", "Not a number", func(s string) bool { return s == "12" })
	require.NoError(t, err)
	assert.Equal(t, "12", got)
	assert.Equal(t, "Number:\nNot a number\n\nNumber:\n", out.String())
}

func TestReadPanickingPredicateRejects(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("boom\nok\n"), &out)

	got, err := c.Read("Value:", "Rejected", func(s string) bool {
		if s == "boom" {
			panic("predicate failure")
		}
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Contains(t, out.String(), "Rejected")
}

func TestReadLastLineWithoutNewline(t *testing.T) {
	c := New(strings.NewReader("last"), &bytes.Buffer{})

	got, err := c.Prompt("Input:")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = c.Prompt("Input:")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestReadSecretFallsBackOnPlainInput(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("secret\n"), &out)

	got, err := c.ReadSecret("Password:", "Wrong", func(string) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
}

func TestPrintf(t *testing.T) {
	var out bytes.Buffer
	New(strings.NewReader(""), &out).Printf("%d|%.2f", 3, 1.5)
	assert.Equal(t, "3|1.50\n", out.String())
}
