package middleware

import (
	"context"
	"errors"

	"balilove/internal/app/commands"
	"balilove/internal/app/queries"
)

// ErrValidation marks caller errors; HTTP maps it to 400.
var ErrValidation = errors.New("validation failed")

// Validatable messages check their own fields.
type Validatable interface {
	Validate() error
}

// ValidationError wraps a field error so errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Err error
}

func (e ValidationError) Error() string { return e.Err.Error() }
func (e ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

func validate(message any) error {
	v, ok := message.(Validatable)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return ValidationError{Err: err}
	}
	return nil
}

// Validation rejects commands whose Validate method fails.
func Validation() CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if err := validate(cmd); err != nil {
				return nil, err
			}
			return next.Dispatch(ctx, cmd)
		})
	}
}

// QueryValidation rejects queries whose Validate method fails.
func QueryValidation() QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if err := validate(q); err != nil {
				return nil, err
			}
			return next.Ask(ctx, q)
		})
	}
}
