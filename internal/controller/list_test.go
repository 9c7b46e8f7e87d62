package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/model"
)

func pageOf(items ...string) model.Page[string] {
	return model.Page[string]{
		Content:       items,
		TotalElements: int64(len(items)),
		TotalPages:    1,
	}
}

func TestListerOneFetchPerQuery(t *testing.T) {
	var calls int64
	fetch := func(ctx context.Context, q api.PageQuery, filter string) (model.Page[string], error) {
		atomic.AddInt64(&calls, 1)
		return pageOf(filter), nil
	}
	l := NewLister(fetch, 10, "")
	ctx := context.Background()

	l.SetQuery(ctx, "닭가슴살", 3)
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Fatalf("expected a single fetch for one (filter, page) change, got %d", n)
	}
	snap := l.Snapshot()
	if snap.Page != 3 || snap.Filter != "닭가슴살" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	l.SetPage(ctx, 4)
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if n := atomic.LoadInt64(&calls); n != 2 {
		t.Fatalf("expected one more fetch for page change, got %d total", n)
	}
}

func TestListerDiscardsStaleResponse(t *testing.T) {
	slowDone := make(chan struct{})
	fetch := func(ctx context.Context, q api.PageQuery, filter string) (model.Page[string], error) {
		if filter == "slow" {
			<-slowDone
			return pageOf("stale result"), nil
		}
		return pageOf("fresh result"), nil
	}
	l := NewLister(fetch, 10, "")
	ctx := context.Background()

	l.SetFilter(ctx, "slow")
	l.SetFilter(ctx, "fast")
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	close(slowDone)
	// Give the superseded fetch a chance to land.
	time.Sleep(20 * time.Millisecond)

	snap := l.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0] != "fresh result" {
		t.Fatalf("stale response overwrote newer one: %+v", snap.Items)
	}
}

func TestListerErrorDoesNotClobberOnRetry(t *testing.T) {
	fail := true
	fetch := func(ctx context.Context, q api.PageQuery, filter string) (model.Page[string], error) {
		if fail {
			return model.Page[string]{}, errors.New("network down")
		}
		return pageOf("ok"), nil
	}
	l := NewLister(fetch, 10, "")
	ctx := context.Background()

	l.SetFilter(ctx, "x")
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if l.Snapshot().Phase() != PhaseError {
		t.Fatalf("expected error phase, got %v", l.Snapshot().Phase())
	}

	fail = false
	l.Refresh(ctx)
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	snap := l.Snapshot()
	if snap.Err != nil || snap.Phase() != PhaseData {
		t.Fatalf("expected recovery after refresh: %+v", snap)
	}
}

func TestPhasePriority(t *testing.T) {
	err := errors.New("boom")
	cases := []struct {
		snap Snapshot[string]
		want Phase
	}{
		{Snapshot[string]{Loading: true, Err: err, Items: []string{"a"}}, PhaseLoading},
		{Snapshot[string]{Err: err, Items: []string{"a"}}, PhaseError},
		{Snapshot[string]{Items: nil}, PhaseEmpty},
		{Snapshot[string]{Items: []string{"a"}}, PhaseData},
	}
	for i, c := range cases {
		if got := c.snap.Phase(); got != c.want {
			t.Fatalf("case %d: got phase %v, want %v", i, got, c.want)
		}
	}
}

func TestListerNegativePageClampsToZero(t *testing.T) {
	var gotPage int
	fetch := func(ctx context.Context, q api.PageQuery, filter string) (model.Page[string], error) {
		gotPage = q.Page
		return pageOf(), nil
	}
	l := NewLister(fetch, 10, "")
	ctx := context.Background()
	l.SetPage(ctx, -5)
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if gotPage != 0 {
		t.Fatalf("expected page clamped to 0, fetched page %d", gotPage)
	}
}
