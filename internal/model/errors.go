package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIO marks a missing, unreadable or unwritable file.
	ErrIO = errors.New("io failure")
	// ErrDecode marks input that is not valid UTF-8.
	ErrDecode = errors.New("decode failure")
	// ErrUnterminatedLiteral marks a literal or comment that never closes.
	ErrUnterminatedLiteral = errors.New("unterminated literal")
	// ErrProtocolViolation marks malformed spans handed to a stage, or a
	// stage that altered a protected region. It is a programming error.
	ErrProtocolViolation = errors.New("protocol violation")
	// ErrSyntax marks output rejected by the syntax checker.
	ErrSyntax = errors.New("syntax check failed")
)

// UnterminatedError carries every issue the scanner recorded.
type UnterminatedError struct {
	Issues []Issue
}

func (e *UnterminatedError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}

	return fmt.Sprintf("%s: %s", ErrUnterminatedLiteral, strings.Join(parts, ", "))
}

func (e *UnterminatedError) Unwrap() error {
	return ErrUnterminatedLiteral
}
