package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/cache"
	"github.com/jxhee99/HappyMeal/internal/controller"
	"github.com/jxhee99/HappyMeal/internal/model"
	"github.com/jxhee99/HappyMeal/internal/session"
)

var foodsCmd = &cobra.Command{
	Use:   "foods",
	Short: "Browse the food catalog",
}

var (
	foodsPage   int
	foodsSize   int
	foodsSort   string
	foodsCached bool
)

var foodsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			lister := controller.NewLister(func(ctx context.Context, q api.PageQuery, filter string) (model.Page[model.Food], error) {
				return c.GetFoods(ctx, q)
			}, foodsSize, foodsSort)
			lister.SetPage(ctx, foodsPage)
			if err := lister.Wait(ctx); err != nil {
				return err
			}
			return renderFoodSnapshot(cmd.OutOrStdout(), lister.Snapshot())
		})
	},
}

var foodsSearchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search foods by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		q := api.PageQuery{Page: foodsPage, Size: foodsSize, SortBy: foodsSort}

		if foodsCached {
			return withCache(func(db *sql.DB) error {
				if page, ok, err := cache.GetFoodSearch(db, name, q); err != nil {
					return err
				} else if ok {
					return renderFoodPage(cmd.OutOrStdout(), page)
				}
				return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
					page, err := c.SearchFoods(ctx, name, q)
					if err != nil {
						return err
					}
					if err := cache.PutFoodSearch(db, name, q, page, cache.DefaultTTL); err != nil {
						return err
					}
					return renderFoodPage(cmd.OutOrStdout(), page)
				})
			})
		}

		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			lister := controller.NewLister(func(ctx context.Context, q api.PageQuery, filter string) (model.Page[model.Food], error) {
				return c.SearchFoods(ctx, filter, q)
			}, foodsSize, foodsSort)
			lister.SetQuery(ctx, name, foodsPage)
			if err := lister.Wait(ctx); err != nil {
				return err
			}
			return renderFoodSnapshot(cmd.OutOrStdout(), lister.Snapshot())
		})
	},
}

var foodsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			food, err := c.GetFood(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %d\nName: %s\nCategory: %s\n", food.FoodID, food.Name, food.Category)
			fmt.Fprintf(out, "Serving: %.0f%s\n", food.ServingSize, food.Unit)
			fmt.Fprintf(out, "Per 100g: %.1fkcal carbs %.1f sugar %.1f protein %.1f fat %.1f\n",
				food.Calories, food.Carbs, food.Sugar, food.Protein, food.Fat)
			if food.FoodCode != "" {
				fmt.Fprintf(out, "Code: %s\n", food.FoodCode)
			}
			return nil
		})
	},
}

var foodsRecommendCmd = &cobra.Command{
	Use:   "recommend <category>",
	Short: "Show recommended foods for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			foods, err := c.GetRecommendedFoods(ctx, args[0])
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "검색 결과가 없습니다")
				return nil
			}
			printFoodRows(cmd.OutOrStdout(), foods)
			return nil
		})
	},
}

func renderFoodSnapshot(out io.Writer, snap controller.Snapshot[model.Food]) error {
	switch snap.Phase() {
	case controller.PhaseError:
		return snap.Err
	case controller.PhaseEmpty:
		fmt.Fprintln(out, "검색 결과가 없습니다")
		return nil
	default:
		printFoodRows(out, snap.Items)
		fmt.Fprintf(out, "page %d/%d (%d foods)\n", snap.Page+1, snap.TotalPages, snap.Total)
		return nil
	}
}

func renderFoodPage(out io.Writer, page model.Page[model.Food]) error {
	if len(page.Content) == 0 {
		fmt.Fprintln(out, "검색 결과가 없습니다")
		return nil
	}
	printFoodRows(out, page.Content)
	fmt.Fprintf(out, "page %d/%d (%d foods)\n", page.PageNumber+1, page.TotalPages, page.TotalElements)
	return nil
}

func printFoodRows(out io.Writer, foods []model.Food) {
	fmt.Fprintln(out, "ID\tNAME\tCATEGORY\tKCAL\tCARBS\tSUGAR\tPROTEIN\tFAT")
	for _, f := range foods {
		fmt.Fprintf(out, "%d\t%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			f.FoodID, f.Name, f.Category, f.Calories, f.Carbs, f.Sugar, f.Protein, f.Fat)
	}
}

func init() {
	for _, c := range []*cobra.Command{foodsListCmd, foodsSearchCmd} {
		c.Flags().IntVar(&foodsPage, "page", 0, "Page number (0-based)")
		c.Flags().IntVar(&foodsSize, "size", 10, "Items per page")
		c.Flags().StringVar(&foodsSort, "sort", "name ASC", "Sort order (e.g. 'calories DESC')")
	}
	foodsSearchCmd.Flags().BoolVar(&foodsCached, "cached", false, "Serve from the local cache when fresh")
	foodsCmd.AddCommand(foodsListCmd, foodsSearchCmd, foodsShowCmd, foodsRecommendCmd)
	rootCmd.AddCommand(foodsCmd)
}
