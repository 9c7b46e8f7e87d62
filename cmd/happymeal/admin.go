package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/session"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the food catalog (admin)",
}

var adminFoodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage food records",
}

var (
	adminFoodName    string
	adminFoodCat     string
	adminFoodServing float64
	adminFoodUnit    string
	adminFoodKcal    float64
	adminFoodCarbs   float64
	adminFoodSugar   float64
	adminFoodProtein float64
	adminFoodFat     float64
	adminFoodImg     string
	adminFoodCode    string
)

func adminFoodDraft() api.FoodDraft {
	return api.FoodDraft{
		Name:        adminFoodName,
		Category:    adminFoodCat,
		ServingSize: adminFoodServing,
		Unit:        adminFoodUnit,
		Calories:    adminFoodKcal,
		Carbs:       adminFoodCarbs,
		Sugar:       adminFoodSugar,
		Protein:     adminFoodProtein,
		Fat:         adminFoodFat,
		ImgURL:      adminFoodImg,
		FoodCode:    adminFoodCode,
	}
}

var adminFoodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food record",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			food, err := c.AdminCreateFood(ctx, adminFoodDraft())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %d (%s)\n", food.FoodID, food.Name)
			return nil
		})
	},
}

var adminFoodUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a food record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			current, err := c.GetFood(ctx, id)
			if err != nil {
				return err
			}
			draft := api.FoodDraft{
				Name:        current.Name,
				Category:    current.Category,
				ServingSize: current.ServingSize,
				Unit:        current.Unit,
				Calories:    current.Calories,
				Carbs:       current.Carbs,
				Sugar:       current.Sugar,
				Protein:     current.Protein,
				Fat:         current.Fat,
				ImgURL:      current.ImgURL,
				FoodCode:    current.FoodCode,
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				draft.Name = adminFoodName
			}
			if flags.Changed("category") {
				draft.Category = adminFoodCat
			}
			if flags.Changed("serving") {
				draft.ServingSize = adminFoodServing
			}
			if flags.Changed("unit") {
				draft.Unit = adminFoodUnit
			}
			if flags.Changed("calories") {
				draft.Calories = adminFoodKcal
			}
			if flags.Changed("carbs") {
				draft.Carbs = adminFoodCarbs
			}
			if flags.Changed("sugar") {
				draft.Sugar = adminFoodSugar
			}
			if flags.Changed("protein") {
				draft.Protein = adminFoodProtein
			}
			if flags.Changed("fat") {
				draft.Fat = adminFoodFat
			}
			if flags.Changed("image-url") {
				draft.ImgURL = adminFoodImg
			}
			if flags.Changed("code") {
				draft.FoodCode = adminFoodCode
			}
			if _, err := c.AdminUpdateFood(ctx, id, draft); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated")
			return nil
		})
	},
}

var adminFoodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a food record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			if err := c.AdminDeleteFood(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{adminFoodAddCmd, adminFoodUpdateCmd} {
		c.Flags().StringVar(&adminFoodName, "name", "", "Food name")
		c.Flags().StringVar(&adminFoodCat, "category", "", "Food category")
		c.Flags().Float64Var(&adminFoodServing, "serving", 100, "Serving size")
		c.Flags().StringVar(&adminFoodUnit, "unit", "g", "Serving unit")
		c.Flags().Float64Var(&adminFoodKcal, "calories", 0, "Calories per 100g")
		c.Flags().Float64Var(&adminFoodCarbs, "carbs", 0, "Carbs per 100g")
		c.Flags().Float64Var(&adminFoodSugar, "sugar", 0, "Sugar per 100g")
		c.Flags().Float64Var(&adminFoodProtein, "protein", 0, "Protein per 100g")
		c.Flags().Float64Var(&adminFoodFat, "fat", 0, "Fat per 100g")
		c.Flags().StringVar(&adminFoodImg, "image-url", "", "Image URL")
		c.Flags().StringVar(&adminFoodCode, "code", "", "Food code")
	}
	adminFoodCmd.AddCommand(adminFoodAddCmd, adminFoodUpdateCmd, adminFoodDeleteCmd)
	adminCmd.AddCommand(adminFoodCmd)
	rootCmd.AddCommand(adminCmd)
}
