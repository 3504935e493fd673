package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for submission validation. Both concrete errors wrap
// ErrInvalidSubmission so callers can match the family with errors.Is.
var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrEmptyUserID       = fmt.Errorf("%w: empty user_id", ErrInvalidSubmission)
	ErrNonPositiveScore  = fmt.Errorf("%w: score must be positive", ErrInvalidSubmission)
)
