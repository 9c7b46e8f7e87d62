package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jxhee99/HappyMeal/internal/model"
)

type FoodRequestDraft struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	ServingSize float64 `json:"servingSize"`
	Unit        string  `json:"unit"`
	Calories    float64 `json:"calories"`
	Carbs       float64 `json:"carbs"`
	Sugar       float64 `json:"sugar"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
}

func (c *Client) CreateFoodRequest(ctx context.Context, draft FoodRequestDraft) (model.FoodRequest, error) {
	var req model.FoodRequest
	if strings.TrimSpace(draft.Name) == "" {
		return req, fmt.Errorf("food name is required")
	}
	if strings.TrimSpace(draft.Category) == "" {
		return req, fmt.Errorf("category is required")
	}
	err := c.do(ctx, http.MethodPost, "/food-requests", nil, draft, &req)
	return req, err
}

// GetFoodRequests lists every request; the server restricts this to
// admins.
func (c *Client) GetFoodRequests(ctx context.Context) ([]model.FoodRequest, error) {
	var reqs []model.FoodRequest
	err := c.do(ctx, http.MethodGet, "/food-requests", nil, nil, &reqs)
	return reqs, err
}

func (c *Client) GetMyFoodRequests(ctx context.Context) ([]model.FoodRequest, error) {
	var reqs []model.FoodRequest
	err := c.do(ctx, http.MethodGet, "/food-requests/user", nil, nil, &reqs)
	return reqs, err
}

// UpdateFoodRequestStatus moves a PENDING request to APPROVED or
// REJECTED. Only PENDING is mutable; the server rejects anything else,
// the client just avoids the pointless call.
func (c *Client) UpdateFoodRequestStatus(ctx context.Context, requestID int64, status string) error {
	if status != model.RequestApproved && status != model.RequestRejected {
		return fmt.Errorf("invalid request status %q", status)
	}
	body := map[string]string{"isRegistered": status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/food-requests/%d/status", requestID), nil, body, nil)
}
