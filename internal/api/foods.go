package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jxhee99/HappyMeal/internal/model"
)

// PageQuery is the paging contract shared by every list endpoint: page
// is 0-based and size must be set explicitly, callers never rely on a
// server default.
type PageQuery struct {
	Page   int
	Size   int
	SortBy string
}

func (q PageQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	return v
}

func (c *Client) GetFoods(ctx context.Context, q PageQuery) (model.Page[model.Food], error) {
	var page model.Page[model.Food]
	err := c.do(ctx, http.MethodGet, "/foods", q.values(), nil, &page)
	return page, err
}

func (c *Client) SearchFoods(ctx context.Context, name string, q PageQuery) (model.Page[model.Food], error) {
	var page model.Page[model.Food]
	if strings.TrimSpace(name) == "" {
		return page, fmt.Errorf("search name is required")
	}
	v := q.values()
	v.Set("name", name)
	err := c.do(ctx, http.MethodGet, "/foods/search", v, nil, &page)
	return page, err
}

func (c *Client) GetFood(ctx context.Context, foodID int64) (model.Food, error) {
	var food model.Food
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/foods/%d", foodID), nil, nil, &food)
	return food, err
}

func (c *Client) GetRecommendedFoods(ctx context.Context, category string) ([]model.Food, error) {
	if strings.TrimSpace(category) == "" {
		return nil, fmt.Errorf("category is required")
	}
	v := url.Values{}
	v.Set("category", category)
	var foods []model.Food
	err := c.do(ctx, http.MethodGet, "/foods/recommendations", v, nil, &foods)
	return foods, err
}
