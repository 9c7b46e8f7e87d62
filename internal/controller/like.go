package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/model"
)

// ErrToggleInFlight reports a like toggle attempted while one is
// pending for the same post; the caller keeps the current status.
var ErrToggleInFlight = errors.New("like toggle already in flight")

// LikeToggler flips a post's like server-side and then refetches the
// authoritative status. The shared likesCount is never adjusted with a
// locally guessed delta, and each toggle carries a request id so a
// rapid double-click collapses into one call.
type LikeToggler struct {
	mu       sync.Mutex
	toggle   func(context.Context) error
	status   func(context.Context) (model.LikeStatus, error)
	inflight string
	current  model.LikeStatus
}

func NewLikeToggler(client *api.Client, boardID int64) *LikeToggler {
	return &LikeToggler{
		toggle: func(ctx context.Context) error { return client.ToggleLike(ctx, boardID) },
		status: func(ctx context.Context) (model.LikeStatus, error) { return client.GetLikeStatus(ctx, boardID) },
	}
}

// Load primes the toggler with the current server status.
func (t *LikeToggler) Load(ctx context.Context) (model.LikeStatus, error) {
	status, err := t.status(ctx)
	if err != nil {
		return model.LikeStatus{}, err
	}
	t.mu.Lock()
	t.current = status
	t.mu.Unlock()
	return status, nil
}

// Toggle flips the like once and returns the refetched status. While a
// toggle is pending further calls return ErrToggleInFlight.
func (t *LikeToggler) Toggle(ctx context.Context) (model.LikeStatus, error) {
	t.mu.Lock()
	if t.inflight != "" {
		cur := t.current
		t.mu.Unlock()
		return cur, ErrToggleInFlight
	}
	reqID := uuid.NewString()
	t.inflight = reqID
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		if t.inflight == reqID {
			t.inflight = ""
		}
		t.mu.Unlock()
	}()

	if err := t.toggle(ctx); err != nil {
		return t.Current(), err
	}
	status, err := t.status(ctx)
	if err != nil {
		return t.Current(), err
	}
	t.mu.Lock()
	t.current = status
	t.mu.Unlock()
	return status, nil
}

func (t *LikeToggler) Current() model.LikeStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
