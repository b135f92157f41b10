package main

import (
	"errors"

	"github.com/gastownhall/distfix/internal/config"
	"github.com/gastownhall/distfix/internal/hook"
)

// HintedError wraps an error with a user-facing recovery hint.
type HintedError struct {
	Err  error
	Hint string
}

func (h *HintedError) Error() string { return h.Err.Error() }
func (h *HintedError) Unwrap() error { return h.Err }

// hintWrap attaches a recovery hint for the errors users can act on.
// Other errors are returned unchanged.
func hintWrap(err error) error {
	if err == nil {
		return nil
	}
	var hint string
	switch {
	case errors.Is(err, config.ErrExists):
		hint = "Edit the existing " + config.FileName + ", or remove it to regenerate."
	case errors.Is(err, hook.ErrBuildFailed):
		hint = "Re-run with --verbose to see the build output, or use --skip-build if the bundle is built elsewhere."
	case errors.Is(err, config.ErrInvalid):
		hint = "Check " + config.FileName + " and $XDG_CONFIG_HOME/distfix/config.toml for TOML errors."
	default:
		return err
	}
	return &HintedError{Err: err, Hint: hint}
}
