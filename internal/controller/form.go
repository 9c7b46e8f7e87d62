package controller

import (
	"context"
	"errors"
	"sync"
)

// ErrSubmitInFlight reports a submit attempted while the previous one
// has not settled; rapid double-submission must not issue two calls.
var ErrSubmitInFlight = errors.New("submit already in flight")

// Form is the create/edit state machine: a local draft, local
// validation before the one network call, and on failure an inline
// error with the draft left intact so entered data is never lost.
type Form[T any] struct {
	mu         sync.Mutex
	draft      T
	validate   func(T) error
	submit     func(context.Context, T) error
	submitting bool
	errMsg     string
}

// NewForm starts from draft: zero-valued for create, a copy of the
// fetched entity for edit.
func NewForm[T any](draft T, validate func(T) error, submit func(context.Context, T) error) *Form[T] {
	return &Form[T]{draft: draft, validate: validate, submit: submit}
}

func (f *Form[T]) Draft() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form[T]) SetDraft(draft T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
	f.errMsg = ""
}

// Err is the inline error from the last failed validation or submit,
// empty when none.
func (f *Form[T]) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Submit validates locally, then issues the create-or-update call once.
// A validation failure sets the inline error without any network call.
// A submit failure sets the inline error and preserves the draft.
func (f *Form[T]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if f.validate != nil {
		if err := f.validate(f.draft); err != nil {
			f.errMsg = err.Error()
			f.mu.Unlock()
			return err
		}
	}
	f.submitting = true
	f.errMsg = ""
	draft := f.draft
	f.mu.Unlock()

	err := f.submit(ctx, draft)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.errMsg = err.Error()
	}
	f.mu.Unlock()
	return err
}
