package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmorales/pdf-extract/config"
)

func TestPromptSignalsExhaustedInput(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("1\n"))

	line, ok := prompt(in, "")
	require.True(t, ok)
	assert.Equal(t, "1", line)

	_, ok = prompt(in, "")
	assert.False(t, ok)

	// Exhausted input stays exhausted.
	_, ok = prompt(in, "")
	assert.False(t, ok)
}

func TestPromptAcceptsLineWithoutTrailingNewline(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("2"))

	line, ok := prompt(in, "")
	require.True(t, ok)
	assert.Equal(t, "2", line)
}

func TestMenuLoopExitsOnChoice(t *testing.T) {
	cfg := config.Default()
	menuLoop(cfg, bufio.NewReader(strings.NewReader("0\n")))
}

func TestMenuLoopExitsOnClosedInput(t *testing.T) {
	cfg := config.Default()

	// Nothing to read, as when the tool is run with stdin closed. The loop
	// must return instead of re-printing the menu forever.
	menuLoop(cfg, bufio.NewReader(strings.NewReader("")))

	// An invalid choice followed by end of input must also terminate.
	menuLoop(cfg, bufio.NewReader(strings.NewReader("9\n")))
}
