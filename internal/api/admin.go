package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jxhee99/HappyMeal/internal/model"
)

type FoodDraft struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	ServingSize float64 `json:"servingSize"`
	Unit        string  `json:"unit"`
	Calories    float64 `json:"calories"`
	Carbs       float64 `json:"carbs"`
	Sugar       float64 `json:"sugar"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	ImgURL      string  `json:"imgUrl,omitempty"`
	FoodCode    string  `json:"foodCode,omitempty"`
}

func (d FoodDraft) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("food name is required")
	}
	if strings.TrimSpace(d.Category) == "" {
		return fmt.Errorf("category is required")
	}
	return nil
}

// Admin endpoints; the role gate here only skips doomed calls, the
// server enforces the actual authorization.

func (c *Client) AdminCreateFood(ctx context.Context, draft FoodDraft) (model.Food, error) {
	var food model.Food
	if err := draft.validate(); err != nil {
		return food, err
	}
	if !c.Session.IsAdmin() {
		return food, fmt.Errorf("admin role required")
	}
	err := c.do(ctx, http.MethodPost, "/admin/foods", nil, draft, &food)
	return food, err
}

func (c *Client) AdminUpdateFood(ctx context.Context, foodID int64, draft FoodDraft) (model.Food, error) {
	var food model.Food
	if err := draft.validate(); err != nil {
		return food, err
	}
	if !c.Session.IsAdmin() {
		return food, fmt.Errorf("admin role required")
	}
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/foods/%d", foodID), nil, draft, &food)
	return food, err
}

func (c *Client) AdminDeleteFood(ctx context.Context, foodID int64) error {
	if !c.Session.IsAdmin() {
		return fmt.Errorf("admin role required")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/foods/%d", foodID), nil, nil, nil)
}
