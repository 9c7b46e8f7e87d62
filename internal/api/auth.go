package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jxhee99/HappyMeal/internal/model"
	"github.com/jxhee99/HappyMeal/internal/session"
)

// LoginURL is the server's OAuth2 entry point; the browser comes back
// to the redirect URI with the token bundle in query parameters.
func (c *Client) LoginURL(redirectURI string) string {
	u := c.BaseURL + "/oauth2/authorization/google"
	if redirectURI != "" {
		u += "?redirect_uri=" + url.QueryEscape(redirectURI)
	}
	return u
}

// ParseRedirect consumes the OAuth redirect URL and extracts the user
// and token pair. All of accessToken, refreshToken, userId and nickname
// are required; role defaults to USER when the server omits it.
func ParseRedirect(rawURL string) (model.User, session.Tokens, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return model.User{}, session.Tokens{}, fmt.Errorf("parse redirect url: %w", err)
	}
	q := u.Query()
	tokens := session.Tokens{
		AccessToken:  q.Get("accessToken"),
		RefreshToken: q.Get("refreshToken"),
	}
	userID := q.Get("userId")
	nickname := q.Get("nickname")
	if tokens.AccessToken == "" || tokens.RefreshToken == "" || userID == "" || nickname == "" {
		return model.User{}, session.Tokens{}, fmt.Errorf("redirect url missing required parameters")
	}
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return model.User{}, session.Tokens{}, fmt.Errorf("invalid userId %q in redirect url", userID)
	}
	role := q.Get("role")
	if role == "" {
		role = model.RoleUser
	}
	return model.User{UserID: id, Nickname: nickname, Role: role}, tokens, nil
}
