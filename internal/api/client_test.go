package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jxhee99/HappyMeal/internal/model"
	"github.com/jxhee99/HappyMeal/internal/session"
)

func newTestStore(t *testing.T, tokens session.Tokens) *session.Store {
	t.Helper()
	s, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	if tokens.AccessToken != "" {
		user := model.User{UserID: 1, Nickname: "tester", Role: model.RoleUser}
		if err := s.Login(user, tokens); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	return s
}

func TestRequestAttachesBearerAndPaging(t *testing.T) {
	var gotAuth, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(model.Page[model.Food]{Content: []model.Food{{FoodID: 1, Name: "샐러드"}}})
	}))
	defer ts.Close()

	store := newTestStore(t, session.Tokens{AccessToken: "token-a", RefreshToken: "token-r"})
	c := NewClient(ts.URL, store)

	page, err := c.GetFoods(context.Background(), PageQuery{Page: 2, Size: 20, SortBy: "name ASC"})
	if err != nil {
		t.Fatalf("get foods: %v", err)
	}
	if gotAuth != "Bearer token-a" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotQuery != "page=2&size=20&sortBy=name+ASC" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
	if len(page.Content) != 1 || page.Content[0].Name != "샐러드" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestUnauthorizedRefreshesOnceAndRetries(t *testing.T) {
	var refreshCalls, foodCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["refreshToken"] != "token-r" {
			t.Errorf("unexpected refresh token %q", body["refreshToken"])
		}
		_ = json.NewEncoder(w).Encode(session.Tokens{AccessToken: "token-b", RefreshToken: "token-r2"})
	})
	mux.HandleFunc("/api/foods", func(w http.ResponseWriter, r *http.Request) {
		foodCalls++
		if r.Header.Get("Authorization") != "Bearer token-b" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(model.Page[model.Food]{})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	store := newTestStore(t, session.Tokens{AccessToken: "token-a", RefreshToken: "token-r"})
	c := NewClient(ts.URL, store)

	if _, err := c.GetFoods(context.Background(), PageQuery{Size: 10}); err != nil {
		t.Fatalf("get foods after refresh: %v", err)
	}
	if refreshCalls != 1 {
		t.Fatalf("expected exactly one refresh, got %d", refreshCalls)
	}
	if foodCalls != 2 {
		t.Fatalf("expected original call retried once, got %d calls", foodCalls)
	}
	if pair := store.TokenPair(); pair.AccessToken != "token-b" || pair.RefreshToken != "token-r2" {
		t.Fatalf("rotated tokens not stored: %+v", pair)
	}
}

func TestFailedRefreshForcesLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/foods", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	store := newTestStore(t, session.Tokens{AccessToken: "stale", RefreshToken: "stale-r"})
	c := NewClient(ts.URL, store)

	_, err := c.GetFoods(context.Background(), PageQuery{Size: 10})
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatalf("expected session cleared after failed refresh")
	}
}

func TestServerErrorCarriesStatusAndMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "이미 존재하는 음식입니다"})
	}))
	defer ts.Close()

	store := newTestStore(t, session.Tokens{})
	c := NewClient(ts.URL, store)

	_, err := c.GetFood(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "이미 존재하는 음식입니다" {
		t.Fatalf("unexpected error payload: %+v", apiErr)
	}
	if StatusOf(err) != http.StatusConflict {
		t.Fatalf("StatusOf mismatch: %d", StatusOf(err))
	}
}

func TestSearchRequiresName(t *testing.T) {
	store := newTestStore(t, session.Tokens{})
	c := NewClient("http://unreachable.invalid", store)
	if _, err := c.SearchFoods(context.Background(), "  ", PageQuery{Size: 10}); err == nil {
		t.Fatalf("expected validation error before any request")
	}
}

func TestParseRedirectExtractsUserAndTokens(t *testing.T) {
	raw := "http://127.0.0.1:3000/oauth/redirect?accessToken=at&refreshToken=rt&userId=42&nickname=happy&role=ADMIN"
	user, tokens, err := ParseRedirect(raw)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if user.UserID != 42 || user.Nickname != "happy" || user.Role != model.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if tokens.AccessToken != "at" || tokens.RefreshToken != "rt" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}

func TestParseRedirectRejectsMissingParams(t *testing.T) {
	if _, _, err := ParseRedirect("http://127.0.0.1/oauth/redirect?accessToken=at"); err == nil {
		t.Fatalf("expected error for missing parameters")
	}
}

func TestParseRedirectDefaultsRole(t *testing.T) {
	raw := "http://h/oauth/redirect?accessToken=a&refreshToken=r&userId=1&nickname=n"
	user, _, err := ParseRedirect(raw)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Fatalf("expected USER default role, got %q", user.Role)
	}
}
