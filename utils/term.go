package utils

import (
	"context"

	"golang.org/x/term"
)

// IsTerminal returns true if the given file descriptor is a terminal.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

type passwordResult struct {
	pass []byte
	err  error
}

// ReadPasswordFromTerminal reads one line from the terminal fd without echoing it.
// When ctx is done first, the terminal state saved before the read is restored
// so echo comes back, and ctx's error is returned.
func ReadPasswordFromTerminal(ctx context.Context, fd int) (string, error) {
	state, err := term.GetState(fd)
	if err != nil {
		return "", err
	}

	ch := make(chan passwordResult, 1)
	go func() {
		pass, err := term.ReadPassword(fd)
		ch <- passwordResult{pass, err}
	}()

	select {
	case <-ctx.Done():
		_ = term.Restore(fd, state)
		return "", ctx.Err()
	case r := <-ch:
		return string(r.pass), r.err
	}
}
