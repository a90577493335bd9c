package commands

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped failures so callers can branch without
// string-matching messages.
const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

// Wrapping is idempotent: an error a lower layer already categorised keeps
// its original category and code.
func needsWrap(err error) bool {
	return err != nil && !goerrors.IsWrapped(err)
}

// wrapValidationError tags message validation failures.
func wrapValidationError(err error) error {
	if !needsWrap(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

// wrapContextError distinguishes cancellation from deadline expiry so the
// two show up under separate codes.
func wrapContextError(err error) error {
	if !needsWrap(err) {
		return err
	}
	msg, code := "command context error", commandContextErrorCode
	switch err {
	case context.Canceled:
		msg, code = "command execution cancelled", commandContextCanceled
	case context.DeadlineExceeded:
		msg, code = "command execution deadline exceeded", commandContextTimeout
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(code)
}

// wrapExecuteError tags handler failures that escaped without a category.
func wrapExecuteError(err error) error {
	if !needsWrap(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}
