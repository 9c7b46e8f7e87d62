// Package oauth runs the localhost redirect endpoint used during
// login: the browser completes the server's OAuth2 flow and lands here
// with accessToken, refreshToken, userId, nickname and role as query
// parameters.
package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/model"
	"github.com/jxhee99/HappyMeal/internal/session"
)

type Result struct {
	User   model.User
	Tokens session.Tokens
}

type CallbackServer struct {
	srv     *http.Server
	ln      net.Listener
	results chan Result
}

// Start listens on addr ("127.0.0.1:0" picks a free port) and serves
// the /oauth/redirect route until the first successful callback.
func Start(addr string) (*CallbackServer, error) {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen for oauth callback: %w", err)
	}

	s := &CallbackServer{ln: ln, results: make(chan Result, 1)}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/oauth/redirect", func(c *gin.Context) {
		user, tokens, err := api.ParseRedirect(c.Request.URL.String())
		if err != nil {
			c.String(http.StatusBadRequest, "login failed: %v", err)
			return
		}
		select {
		case s.results <- Result{User: user, Tokens: tokens}:
		default:
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, "<html><body><p>로그인 완료. 터미널로 돌아가세요.</p></body></html>")
	})

	s.srv = &http.Server{Handler: engine}
	go func() { _ = s.srv.Serve(ln) }()
	return s, nil
}

// RedirectURI is the address the server should send the browser back
// to.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://%s/oauth/redirect", s.ln.Addr().String())
}

// Wait blocks until a callback arrives or ctx expires.
func (s *CallbackServer) Wait(ctx context.Context) (Result, error) {
	select {
	case r := <-s.results:
		return r, nil
	case <-ctx.Done():
		return Result{}, fmt.Errorf("waiting for oauth redirect: %w", ctx.Err())
	}
}

func (s *CallbackServer) Close() error {
	return s.srv.Shutdown(context.Background())
}
