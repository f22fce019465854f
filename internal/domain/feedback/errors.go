package feedback

import "errors"

var (
	ErrFeedbackNotFound = errors.New("Feedback not found")
	ErrNotFeedbackOwner = errors.New("Only the author can modify this feedback")
)
