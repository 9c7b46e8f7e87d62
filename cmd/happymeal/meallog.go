package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/controller"
	"github.com/jxhee99/HappyMeal/internal/model"
	"github.com/jxhee99/HappyMeal/internal/nutrition"
	"github.com/jxhee99/HappyMeal/internal/session"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record and review meal logs",
}

var (
	logFoodID   int64
	logQuantity float64
	logMealType string
	logDate     string
	logImage    string
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a meal log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			food, err := c.GetFood(ctx, logFoodID)
			if err != nil {
				return err
			}

			preview := nutrition.Scale(food, logQuantity)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %.0fg → %.1fkcal carbs %.1f sugar %.1f protein %.1f fat %.1f\n",
				food.Name, logQuantity, preview.Calories, preview.Carbs, preview.Sugar, preview.Protein, preview.Fat)

			imgURL := ""
			if logImage != "" {
				imgURL, err = c.UploadImage(ctx, logImage)
				if err != nil {
					return err
				}
			}

			date := logDate
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			draft := api.MealLogDraft{
				FoodID:   logFoodID,
				Quantity: logQuantity,
				MealDate: date,
				MealType: strings.ToUpper(strings.TrimSpace(logMealType)),
				ImgURL:   imgURL,
			}
			form := controller.NewForm(draft, nil, func(ctx context.Context, d api.MealLogDraft) error {
				_, err := c.AddMealLog(ctx, d)
				return err
			})
			if err := form.Submit(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Logged")
			return nil
		})
	},
}

var logListDate string

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			var logs []model.MealLog
			var err error
			if logListDate != "" {
				logs, err = c.GetMealLogsByDate(ctx, logListDate)
			} else {
				logs, err = c.GetMealLogs(ctx)
			}
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "기록이 없습니다")
				return nil
			}
			printMealLogs(ctx, cmd.OutOrStdout(), c, logs)
			return nil
		})
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one meal log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("log id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			log, err := c.GetMealLog(ctx, id)
			if err != nil {
				return err
			}
			printMealLogs(ctx, cmd.OutOrStdout(), c, []model.MealLog{log})
			return nil
		})
	},
}

var logUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a meal log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("log id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			current, err := c.GetMealLog(ctx, id)
			if err != nil {
				return err
			}
			draft := api.MealLogDraft{
				FoodID:   current.FoodID,
				Quantity: current.Quantity,
				MealDate: current.MealDate,
				MealType: current.MealType,
				ImgURL:   current.ImgURL,
			}
			if cmd.Flags().Changed("food") {
				draft.FoodID = logFoodID
			}
			if cmd.Flags().Changed("quantity") {
				draft.Quantity = logQuantity
			}
			if cmd.Flags().Changed("type") {
				draft.MealType = strings.ToUpper(strings.TrimSpace(logMealType))
			}
			if cmd.Flags().Changed("date") {
				draft.MealDate = logDate
			}
			if _, err := c.UpdateMealLog(ctx, id, draft); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated")
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("log id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			if err := c.DeleteMealLog(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
			return nil
		})
	},
}

var logStatsDate string

var logStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show daily nutrition totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := logStatsDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			stats, err := c.GetDailyStats(ctx, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1fkcal\tcarbs %.1f\tsugar %.1f\tprotein %.1f\tfat %.1f\n",
				date, stats.TotalCalories, stats.TotalCarbs, stats.TotalSugar, stats.TotalProtein, stats.TotalFat)
			return nil
		})
	},
}

var (
	logWeeklyEnd    string
	logWeeklyServer bool
)

var logWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show the last seven days of nutrition totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			var days []model.DailyStats
			var err error
			if logWeeklyServer {
				days, err = c.GetWeeklyStats(ctx)
			} else {
				end := logWeeklyEnd
				if end == "" {
					end = time.Now().Format("2006-01-02")
				}
				days, err = c.FanOutWeeklyStats(ctx, end)
			}
			if err != nil {
				return err
			}
			renderWeekly(cmd.OutOrStdout(), days)
			return nil
		})
	},
}

// printMealLogs renders logs with nutrition recomputed from the current
// food records, so a later catalog edit is reflected instead of a
// stale per-log total. Food lookups are best-effort; a missing record
// falls back to the log's own figures.
func printMealLogs(ctx context.Context, out io.Writer, c *api.Client, logs []model.MealLog) {
	foods := map[int64]*model.Food{}
	for _, l := range logs {
		if _, ok := foods[l.FoodID]; ok {
			continue
		}
		if f, err := c.GetFood(ctx, l.FoodID); err == nil {
			foods[l.FoodID] = &f
		} else {
			foods[l.FoodID] = nil
		}
	}
	fmt.Fprintln(out, "ID\tDATE\tMEAL\tFOOD\tQTY\tKCAL\tCARBS\tSUGAR\tPROTEIN\tFAT")
	for _, l := range logs {
		scaled := nutrition.ScaleLog(l, foods[l.FoodID])
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%.0fg\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			l.LogID, l.MealDate, l.MealType, l.FoodName, l.Quantity,
			scaled.Calories, scaled.Carbs, scaled.Sugar, scaled.Protein, scaled.Fat)
	}
}

func renderWeekly(out io.Writer, days []model.DailyStats) {
	max := 1.0
	for _, d := range days {
		if d.TotalCalories > max {
			max = d.TotalCalories
		}
	}
	for _, d := range days {
		bar := strings.Repeat("#", int(d.TotalCalories/max*30))
		note := ""
		if d.Missing {
			note = " (no data)"
		}
		fmt.Fprintf(out, "%s\t%7.1fkcal\t%s%s\n", d.Date, d.TotalCalories, bar, note)
	}
}

func init() {
	for _, c := range []*cobra.Command{logAddCmd, logUpdateCmd} {
		c.Flags().Int64Var(&logFoodID, "food", 0, "Food ID")
		c.Flags().Float64Var(&logQuantity, "quantity", 0, "Quantity in grams")
		c.Flags().StringVar(&logMealType, "type", "", "Meal type (BREAKFAST, LUNCH, DINNER, SNACK)")
		c.Flags().StringVar(&logDate, "date", "", "Meal date (YYYY-MM-DD, default today)")
	}
	logAddCmd.Flags().StringVar(&logImage, "image", "", "Image file to upload with the log")
	logListCmd.Flags().StringVar(&logListDate, "date", "", "Only logs for this date (YYYY-MM-DD)")
	logStatsCmd.Flags().StringVar(&logStatsDate, "date", "", "Date to total (default today)")
	logWeeklyCmd.Flags().StringVar(&logWeeklyEnd, "end", "", "Last day of the week (default today)")
	logWeeklyCmd.Flags().BoolVar(&logWeeklyServer, "server", false, "Use the server's weekly endpoint instead of the daily fan-out")
	logCmd.AddCommand(logAddCmd, logListCmd, logShowCmd, logUpdateCmd, logDeleteCmd, logStatsCmd, logWeeklyCmd)
	rootCmd.AddCommand(logCmd)
}
