package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/jxhee99/HappyMeal/internal/model"
)

// fakeLikeServer tracks one board's liked flag and count the way the
// server does: the count only moves when a toggle actually lands.
type fakeLikeServer struct {
	toggles int64
	liked   bool
	count   int
}

func (s *fakeLikeServer) toggler() *LikeToggler {
	return &LikeToggler{
		toggle: func(ctx context.Context) error {
			atomic.AddInt64(&s.toggles, 1)
			if s.liked {
				s.liked = false
				s.count--
			} else {
				s.liked = true
				s.count++
			}
			return nil
		},
		status: func(ctx context.Context) (model.LikeStatus, error) {
			return model.LikeStatus{Liked: s.liked, LikesCount: s.count}, nil
		},
	}
}

func TestToggleReturnsRefetchedCount(t *testing.T) {
	srv := &fakeLikeServer{liked: false, count: 11}
	tg := srv.toggler()

	status, err := tg.Toggle(context.Background())
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !status.Liked || status.LikesCount != 12 {
		t.Fatalf("expected server count 12 after like, got %+v", status)
	}

	status, err = tg.Toggle(context.Background())
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if status.Liked || status.LikesCount != 11 {
		t.Fatalf("expected server count restored, got %+v", status)
	}
}

func TestToggleDedupesWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var toggles int64
	tg := &LikeToggler{
		toggle: func(ctx context.Context) error {
			atomic.AddInt64(&toggles, 1)
			close(started)
			<-release
			return nil
		},
		status: func(ctx context.Context) (model.LikeStatus, error) {
			return model.LikeStatus{Liked: true, LikesCount: 1}, nil
		},
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := tg.Toggle(context.Background())
		firstDone <- err
	}()
	<-started

	if _, err := tg.Toggle(context.Background()); !errors.Is(err, ErrToggleInFlight) {
		t.Fatalf("expected ErrToggleInFlight for rapid second click, got %v", err)
	}
	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if n := atomic.LoadInt64(&toggles); n != 1 {
		t.Fatalf("double-click issued %d toggles, want 1", n)
	}
}

func TestLoadPrimesCurrentStatus(t *testing.T) {
	srv := &fakeLikeServer{liked: true, count: 5}
	tg := srv.toggler()
	status, err := tg.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !status.Liked || status.LikesCount != 5 {
		t.Fatalf("unexpected primed status: %+v", status)
	}
	if tg.Current() != status {
		t.Fatalf("Current out of sync with Load")
	}
}

func TestToggleErrorKeepsLastKnownStatus(t *testing.T) {
	tg := &LikeToggler{
		toggle: func(ctx context.Context) error { return errors.New("network down") },
		status: func(ctx context.Context) (model.LikeStatus, error) {
			return model.LikeStatus{Liked: false, LikesCount: 3}, nil
		},
	}
	if _, err := tg.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	status, err := tg.Toggle(context.Background())
	if err == nil {
		t.Fatalf("expected toggle error")
	}
	if status.Liked || status.LikesCount != 3 {
		t.Fatalf("failed toggle must not change visible status, got %+v", status)
	}
}
