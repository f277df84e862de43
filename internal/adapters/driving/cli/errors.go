package cli

import (
	"github.com/custodia-labs/gifex/internal/core/domain"
)

// userError shows the banner text for err while keeping err in the chain.
type userError struct {
	err error
}

func (e *userError) Error() string { return domain.UserMessage(e.err) }

func (e *userError) Unwrap() error { return e.err }

// asUserError wraps err for display. nil stays nil.
func asUserError(err error) error {
	if err == nil {
		return nil
	}
	return &userError{err: err}
}
