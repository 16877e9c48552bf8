package guestbook

import "errors"

var (
	// ErrFetch marks a failed or unparseable list request.
	ErrFetch = errors.New("fetch guestbook failed")
	// ErrSubmit marks a failed or rejected create request.
	ErrSubmit = errors.New("submit guestbook message failed")
)
