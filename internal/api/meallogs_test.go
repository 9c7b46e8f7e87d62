package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jxhee99/HappyMeal/internal/model"
	"github.com/jxhee99/HappyMeal/internal/session"
)

func TestMealLogDraftValidation(t *testing.T) {
	today := time.Now().Format(dateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(dateLayout)
	cases := []struct {
		name  string
		draft MealLogDraft
		ok    bool
	}{
		{"valid", MealLogDraft{FoodID: 1, Quantity: 150, MealDate: today, MealType: model.MealLunch}, true},
		{"missing food", MealLogDraft{Quantity: 150, MealDate: today, MealType: model.MealLunch}, false},
		{"zero quantity", MealLogDraft{FoodID: 1, MealDate: today, MealType: model.MealLunch}, false},
		{"negative quantity", MealLogDraft{FoodID: 1, Quantity: -10, MealDate: today, MealType: model.MealLunch}, false},
		{"future date", MealLogDraft{FoodID: 1, Quantity: 150, MealDate: tomorrow, MealType: model.MealLunch}, false},
		{"bad date format", MealLogDraft{FoodID: 1, Quantity: 150, MealDate: "30-08-2026", MealType: model.MealLunch}, false},
		{"bad meal type", MealLogDraft{FoodID: 1, Quantity: 150, MealDate: today, MealType: "BRUNCH"}, false},
	}
	for _, c := range cases {
		err := c.draft.validate()
		if c.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("%s: expected validation error", c.name)
		}
	}
}

func TestAddMealLogRejectsInvalidDraftWithoutRequest(t *testing.T) {
	store := newTestStore(t, session.Tokens{})
	c := NewClient("http://unreachable.invalid", store)
	if _, err := c.AddMealLog(context.Background(), MealLogDraft{}); err == nil {
		t.Fatalf("expected validation error before any request")
	}
}

func TestFanOutWeeklyStatsToleratesFailedDays(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if strings.HasSuffix(date, "-27") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(model.MealStats{TotalCalories: 500})
	}))
	defer ts.Close()

	store := newTestStore(t, session.Tokens{AccessToken: "at", RefreshToken: ""})
	c := NewClient(ts.URL, store)

	week, err := c.FanOutWeeklyStats(context.Background(), "2026-08-30")
	if err != nil {
		t.Fatalf("fan out weekly stats: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[0].Date != "2026-08-24" || week[6].Date != "2026-08-30" {
		t.Fatalf("expected chronological order ending on 2026-08-30, got %s..%s", week[0].Date, week[6].Date)
	}
	for _, day := range week {
		if day.Date == "2026-08-27" {
			if !day.Missing || day.TotalCalories != 0 {
				t.Fatalf("failed day should be zeroed and marked missing: %+v", day)
			}
			continue
		}
		if day.Missing || day.TotalCalories != 500 {
			t.Fatalf("healthy day lost its stats: %+v", day)
		}
	}
}

func TestFanOutWeeklyStatsRejectsBadEndDate(t *testing.T) {
	store := newTestStore(t, session.Tokens{})
	c := NewClient("http://unreachable.invalid", store)
	if _, err := c.FanOutWeeklyStats(context.Background(), "today"); err == nil {
		t.Fatalf("expected error for malformed end date")
	}
}
