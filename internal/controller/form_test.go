package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type boardDraft struct {
	Title   string
	Content string
}

func TestFormValidationFailureSkipsNetwork(t *testing.T) {
	var submits int64
	f := NewForm(boardDraft{},
		func(d boardDraft) error {
			if d.Title == "" {
				return errors.New("title is required")
			}
			return nil
		},
		func(ctx context.Context, d boardDraft) error {
			atomic.AddInt64(&submits, 1)
			return nil
		})

	if err := f.Submit(context.Background()); err == nil {
		t.Fatalf("expected validation error")
	}
	if n := atomic.LoadInt64(&submits); n != 0 {
		t.Fatalf("validation failure must not submit, got %d calls", n)
	}
	if f.Err() != "title is required" {
		t.Fatalf("expected inline validation message, got %q", f.Err())
	}
}

func TestFormFailedSubmitPreservesDraft(t *testing.T) {
	draft := boardDraft{Title: "샐러드 후기", Content: "오늘 점심"}
	f := NewForm(draft, nil, func(ctx context.Context, d boardDraft) error {
		return errors.New("server rejected post")
	})

	if err := f.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit error")
	}
	if f.Draft() != draft {
		t.Fatalf("draft lost after failed submit: %+v", f.Draft())
	}
	if f.Err() != "server rejected post" {
		t.Fatalf("expected inline submit error, got %q", f.Err())
	}
}

func TestFormRejectsDoubleSubmit(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var submits int64
	f := NewForm(boardDraft{Title: "t"}, nil, func(ctx context.Context, d boardDraft) error {
		atomic.AddInt64(&submits, 1)
		close(started)
		<-release
		return nil
	})

	firstErr := make(chan error, 1)
	go func() { firstErr <- f.Submit(context.Background()) }()
	<-started

	if err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	close(release)
	if err := <-firstErr; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if n := atomic.LoadInt64(&submits); n != 1 {
		t.Fatalf("double-click issued %d submits, want 1", n)
	}
}

func TestFormSuccessfulSubmitClearsError(t *testing.T) {
	fail := true
	f := NewForm(boardDraft{Title: "t"}, nil, func(ctx context.Context, d boardDraft) error {
		if fail {
			return errors.New("transient")
		}
		return nil
	})
	_ = f.Submit(context.Background())
	fail = false
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if f.Err() != "" {
		t.Fatalf("expected inline error cleared, got %q", f.Err())
	}
}
