package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotImplemented = errors.New("not implemented")

	// Conversion.
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrUnknownUnit           = errors.New("unknown unit")
	ErrInvalidAmount         = errors.New("invalid amount")

	// Timers.
	ErrInvalidTimer = errors.New("timer needs a name and a positive duration")
	ErrTimerFired   = errors.New("timer has already fired")

	// Notes.
	ErrEmptyNote     = errors.New("note text is empty")
	ErrUnknownPreset = errors.New("unknown note style")

	// Chat.
	ErrEmptyMessage    = errors.New("message is empty")
	ErrChatUnavailable = errors.New("chat assistant is not configured")
	ErrNoMessage       = errors.New("no such message")
)
