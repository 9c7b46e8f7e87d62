// Package controller implements the view-side state machines: the
// fetch/filter/paginate lister shared by every list view, the
// create-or-update form, and the like toggler. Controllers own no
// authoritative data; they mirror one page of server state and refetch
// after every mutation.
package controller

import (
	"context"
	"sync"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/model"
)

// Phase is the render state, in priority order: loading beats error,
// error beats empty, empty beats data.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseEmpty
	PhaseData
)

// FetchFunc loads one page for the given filter. The context is
// cancelled when a newer fetch supersedes this one.
type FetchFunc[T any] func(ctx context.Context, q api.PageQuery, filter string) (model.Page[T], error)

// Lister issues exactly one fetch per distinct (filter, page) change
// and never lets a stale response overwrite a newer one: every fetch is
// tagged with a generation, and a result older than the latest issued
// generation is discarded on arrival.
type Lister[T any] struct {
	mu     sync.Mutex
	fetch  FetchFunc[T]
	size   int
	sortBy string

	filter string
	page   int

	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}

	items      []T
	total      int64
	totalPages int
	loading    bool
	err        error
}

// Snapshot is a consistent copy of the lister's visible state.
type Snapshot[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int64
	Filter     string
	Loading    bool
	Err        error
}

func NewLister[T any](fetch FetchFunc[T], size int, sortBy string) *Lister[T] {
	return &Lister[T]{fetch: fetch, size: size, sortBy: sortBy}
}

// SetFilter replaces the filter, rewinds to page 0 and fetches.
func (l *Lister[T]) SetFilter(ctx context.Context, filter string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = filter
	l.page = 0
	l.begin(ctx)
}

// SetQuery sets filter and page together with a single fetch, for
// views whose first load already carries both.
func (l *Lister[T]) SetQuery(ctx context.Context, filter string, page int) {
	if page < 0 {
		page = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = filter
	l.page = page
	l.begin(ctx)
}

// SetPage moves to a page and fetches. Negative pages clamp to 0.
func (l *Lister[T]) SetPage(ctx context.Context, page int) {
	if page < 0 {
		page = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.page = page
	l.begin(ctx)
}

// Refresh refetches the current (filter, page), used after mutations.
func (l *Lister[T]) Refresh(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.begin(ctx)
}

// begin starts a fetch for the current state. Caller holds l.mu. The
// previous in-flight fetch is cancelled; even if it still completes,
// its generation no longer matches and its result is dropped.
func (l *Lister[T]) begin(ctx context.Context) {
	l.gen++
	gen := l.gen
	if l.cancel != nil {
		l.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	done := l.done
	l.loading = true
	l.err = nil

	q := api.PageQuery{Page: l.page, Size: l.size, SortBy: l.sortBy}
	filter := l.filter
	go func() {
		defer close(done)
		page, err := l.fetch(fctx, q, filter)
		l.finish(gen, page, err)
	}()
}

func (l *Lister[T]) finish(gen uint64, page model.Page[T], err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return
	}
	l.loading = false
	if err != nil {
		l.err = err
		return
	}
	l.items = page.Content
	l.total = page.TotalElements
	l.totalPages = page.TotalPages
}

// Wait blocks until the most recently issued fetch settles.
func (l *Lister[T]) Wait(ctx context.Context) error {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Lister[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]T, len(l.items))
	copy(items, l.items)
	return Snapshot[T]{
		Items:      items,
		Page:       l.page,
		TotalPages: l.totalPages,
		Total:      l.total,
		Filter:     l.filter,
		Loading:    l.loading,
		Err:        l.err,
	}
}

// Phase reports what a view should render right now.
func (s Snapshot[T]) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != nil:
		return PhaseError
	case len(s.Items) == 0:
		return PhaseEmpty
	default:
		return PhaseData
	}
}
