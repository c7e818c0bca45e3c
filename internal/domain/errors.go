package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCannotRemoveLastConversation is returned when removing the only conversation.
	ErrCannotRemoveLastConversation = errors.New("at least one conversation must remain")
	// ErrConversationNotFound is returned for unknown conversation ids.
	ErrConversationNotFound = errors.New("conversation not found")
)

// ParseError reports a query segment whose value is not a number.
type ParseError struct {
	Segment string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid value in %q: %v", e.Segment, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DatasetLoadError is fatal at startup: the tool cannot run without a dataset.
type DatasetLoadError struct {
	Path string
	Err  error
}

func (e *DatasetLoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *DatasetLoadError) Unwrap() error { return e.Err }
