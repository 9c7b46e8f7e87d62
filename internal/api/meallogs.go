package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/jxhee99/HappyMeal/internal/model"
)

const dateLayout = "2006-01-02"

type MealLogDraft struct {
	FoodID   int64   `json:"foodId"`
	Quantity float64 `json:"quantity"`
	MealDate string  `json:"mealDate"`
	MealType string  `json:"mealType"`
	ImgURL   string  `json:"imgUrl,omitempty"`
}

func (d MealLogDraft) validate() error {
	if d.FoodID <= 0 {
		return fmt.Errorf("food id is required")
	}
	if d.Quantity <= 0 {
		return fmt.Errorf("quantity must be > 0")
	}
	day, err := time.ParseInLocation(dateLayout, d.MealDate, time.Local)
	if err != nil {
		return fmt.Errorf("invalid meal date %q (expected YYYY-MM-DD)", d.MealDate)
	}
	if day.After(time.Now()) {
		return fmt.Errorf("meal date must be today or in the past")
	}
	switch d.MealType {
	case model.MealBreakfast, model.MealLunch, model.MealDinner, model.MealSnack:
		return nil
	default:
		return fmt.Errorf("invalid meal type %q", d.MealType)
	}
}

func (c *Client) AddMealLog(ctx context.Context, draft MealLogDraft) (model.MealLog, error) {
	var log model.MealLog
	if err := draft.validate(); err != nil {
		return log, err
	}
	err := c.do(ctx, http.MethodPost, "/meallogs", nil, draft, &log)
	return log, err
}

func (c *Client) GetMealLogs(ctx context.Context) ([]model.MealLog, error) {
	var logs []model.MealLog
	err := c.do(ctx, http.MethodGet, "/meallogs", nil, nil, &logs)
	return logs, err
}

func (c *Client) GetMealLogsByDate(ctx context.Context, date string) ([]model.MealLog, error) {
	v := url.Values{}
	v.Set("date", date)
	var logs []model.MealLog
	err := c.do(ctx, http.MethodGet, "/meallogs", v, nil, &logs)
	return logs, err
}

func (c *Client) GetMealLog(ctx context.Context, logID int64) (model.MealLog, error) {
	var log model.MealLog
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/meallogs/%d", logID), nil, nil, &log)
	return log, err
}

func (c *Client) UpdateMealLog(ctx context.Context, logID int64, draft MealLogDraft) (model.MealLog, error) {
	var log model.MealLog
	if err := draft.validate(); err != nil {
		return log, err
	}
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/meallogs/%d", logID), nil, draft, &log)
	return log, err
}

func (c *Client) DeleteMealLog(ctx context.Context, logID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/meallogs/%d", logID), nil, nil, nil)
}

func (c *Client) GetDailyStats(ctx context.Context, date string) (model.MealStats, error) {
	v := url.Values{}
	v.Set("date", date)
	var stats model.MealStats
	err := c.do(ctx, http.MethodGet, "/meallogs/stats", v, nil, &stats)
	return stats, err
}

func (c *Client) GetWeeklyStats(ctx context.Context) ([]model.DailyStats, error) {
	var stats []model.DailyStats
	err := c.do(ctx, http.MethodGet, "/meallogs/stats/weekly", nil, nil, &stats)
	return stats, err
}

// FanOutWeeklyStats fetches the last seven days of daily stats in
// parallel, ending on endDate. One failing day does not block the rest:
// its slot stays zeroed and is marked Missing. Results come back in
// chronological order.
func (c *Client) FanOutWeeklyStats(ctx context.Context, endDate string) ([]model.DailyStats, error) {
	end, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q (expected YYYY-MM-DD)", endDate)
	}
	out := make([]model.DailyStats, 7)
	var wg sync.WaitGroup
	for i := 0; i < 7; i++ {
		day := end.AddDate(0, 0, i-6).Format(dateLayout)
		out[i].Date = day
		wg.Add(1)
		go func(slot int, day string) {
			defer wg.Done()
			stats, err := c.GetDailyStats(ctx, day)
			if err != nil {
				out[slot].Missing = true
				return
			}
			out[slot].MealStats = stats
		}(i, day)
	}
	wg.Wait()
	return out, nil
}
