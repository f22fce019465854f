package releasenote

import "errors"

var (
	ErrNoteNotFound  = errors.New("Release note not found")
	ErrVersionExists = errors.New("A release note for this version already exists")
)
