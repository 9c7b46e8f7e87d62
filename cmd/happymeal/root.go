package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/app"
	"github.com/jxhee99/HappyMeal/internal/cache"
	"github.com/jxhee99/HappyMeal/internal/session"
)

var (
	flagBaseURL     string
	flagSessionPath string
	flagCachePath   string
)

var rootCmd = &cobra.Command{
	Use:   "happymeal",
	Short: "happymeal tracks meals and browses the HappyMeal community from your terminal",
	Long:  "happymeal is a client for the HappyMeal service: food catalog, meal logging with nutrition summaries, community board, and admin tools.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "HappyMeal server address (default from HAPPYMEAL_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagSessionPath, "session", "", "Path to session file")
	rootCmd.PersistentFlags().StringVar(&flagCachePath, "cache-db", "", "Path to local cache database")
}

func resolveBaseURL() string {
	if strings.TrimSpace(flagBaseURL) != "" {
		return strings.TrimRight(strings.TrimSpace(flagBaseURL), "/")
	}
	return app.BaseURL()
}

func withClient(run func(ctx context.Context, c *api.Client, s *session.Store) error) error {
	store, err := session.Open(flagSessionPath)
	if err != nil {
		return err
	}
	client := api.NewClient(resolveBaseURL(), store)
	return run(context.Background(), client, store)
}

func withCache(run func(db *sql.DB) error) error {
	path := flagCachePath
	if path == "" {
		p, err := app.DefaultCachePath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := app.EnsureParentDir(path); err != nil {
		return err
	}
	db, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := cache.ApplyMigrations(db); err != nil {
		return err
	}
	return run(db)
}

// renderError maps the error taxonomy to user-facing lines: auth
// failures ask for login, server errors carry the status-prefixed
// message as-is, transport failures get the generic connect line.
func renderError(err error) string {
	if errors.Is(err, api.ErrLoginRequired) {
		return "login required: run `happymeal login`"
	}
	switch api.StatusOf(err) {
	case 0:
		return err.Error()
	case 401:
		return "login required: run `happymeal login`"
	case 403:
		return "permission denied: " + err.Error()
	default:
		return err.Error()
	}
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}
