package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jxhee99/HappyMeal/internal/model"
)

func (c *Client) GetProfile(ctx context.Context) (model.Profile, error) {
	var profile model.Profile
	err := c.do(ctx, http.MethodGet, "/mypages/profile", nil, nil, &profile)
	return profile, err
}

func (c *Client) UpdateProfile(ctx context.Context, nickname string) (model.Profile, error) {
	var profile model.Profile
	if strings.TrimSpace(nickname) == "" {
		return profile, fmt.Errorf("nickname is required")
	}
	body := map[string]string{"nickname": nickname}
	err := c.do(ctx, http.MethodPut, "/mypages/profile", nil, body, &profile)
	return profile, err
}

func (c *Client) GetMyPosts(ctx context.Context, q PageQuery) (model.Page[model.Board], error) {
	var page model.Page[model.Board]
	err := c.do(ctx, http.MethodGet, "/mypages/posts", q.values(), nil, &page)
	return page, err
}

func (c *Client) GetMyComments(ctx context.Context, q PageQuery) (model.Page[model.Comment], error) {
	var page model.Page[model.Comment]
	err := c.do(ctx, http.MethodGet, "/mypages/comments", q.values(), nil, &page)
	return page, err
}

func (c *Client) GetMyLikes(ctx context.Context, q PageQuery) (model.Page[model.Board], error) {
	var page model.Page[model.Board]
	err := c.do(ctx, http.MethodGet, "/mypages/likes", q.values(), nil, &page)
	return page, err
}
