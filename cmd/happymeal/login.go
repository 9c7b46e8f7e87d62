package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/oauth"
	"github.com/jxhee99/HappyMeal/internal/session"
)

var (
	loginManual  bool
	loginAddr    string
	loginTimeout time.Duration
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in through the server's OAuth2 flow",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			if loginManual {
				return loginFromPastedURL(cmd, s)
			}

			srv, err := oauth.Start(loginAddr)
			if err != nil {
				return err
			}
			defer srv.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Open this URL in your browser to log in:")
			fmt.Fprintln(cmd.OutOrStdout(), "  "+c.LoginURL(srv.RedirectURI()))

			waitCtx, cancel := context.WithTimeout(ctx, loginTimeout)
			defer cancel()
			result, err := srv.Wait(waitCtx)
			if err != nil {
				return err
			}
			if err := s.Login(result.User, result.Tokens); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", result.User.Nickname, result.User.Role)
			return nil
		})
	},
}

// loginFromPastedURL covers environments where the browser cannot reach
// a local port: the user pastes the full redirect URL instead.
func loginFromPastedURL(cmd *cobra.Command, s *session.Store) error {
	fmt.Fprintln(cmd.OutOrStdout(), "Paste the redirect URL you were sent to:")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read redirect url: %w", err)
	}
	user, tokens, err := api.ParseRedirect(strings.TrimSpace(line))
	if err != nil {
		return err
	}
	if err := s.Login(user, tokens); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Nickname, user.Role)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.Open(flagSessionPath)
		if err != nil {
			return err
		}
		if err := s.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.Open(flagSessionPath)
		if err != nil {
			return err
		}
		u := s.User()
		if u == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ID: %d\nNickname: %s\nRole: %s\nSession: %s\n", u.UserID, u.Nickname, u.Role, s.Path())
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolVar(&loginManual, "manual", false, "Paste the redirect URL instead of running a local callback server")
	loginCmd.Flags().StringVar(&loginAddr, "listen", "127.0.0.1:0", "Address for the local OAuth callback server")
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 3*time.Minute, "How long to wait for the OAuth redirect")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
