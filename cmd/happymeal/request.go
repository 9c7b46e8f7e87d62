package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/model"
	"github.com/jxhee99/HappyMeal/internal/session"
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Propose foods for the catalog",
}

var (
	reqName        string
	reqCategory    string
	reqServingSize float64
	reqUnit        string
	reqCalories    float64
	reqCarbs       float64
	reqSugar       float64
	reqProtein     float64
	reqFat         float64
)

var requestSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a food-addition request",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			req, err := c.CreateFoodRequest(ctx, api.FoodRequestDraft{
				Name:        reqName,
				Category:    reqCategory,
				ServingSize: reqServingSize,
				Unit:        reqUnit,
				Calories:    reqCalories,
				Carbs:       reqCarbs,
				Sugar:       reqSugar,
				Protein:     reqProtein,
				Fat:         reqFat,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted request %d (%s)\n", req.FoodRequestID, req.IsRegistered)
			return nil
		})
	},
}

var requestMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your food requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			reqs, err := c.GetMyFoodRequests(ctx)
			if err != nil {
				return err
			}
			printFoodRequests(cmd.OutOrStdout(), reqs)
			return nil
		})
	},
}

var requestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all food requests (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			reqs, err := c.GetFoodRequests(ctx)
			if err != nil {
				return err
			}
			printFoodRequests(cmd.OutOrStdout(), reqs)
			return nil
		})
	},
}

var requestApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  requestDecision(model.RequestApproved),
}

var requestRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  requestDecision(model.RequestRejected),
}

func requestDecision(status string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("request id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			if !s.IsAdmin() {
				return fmt.Errorf("admin role required")
			}
			if err := c.UpdateFoodRequestStatus(ctx, id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request %d → %s\n", id, status)
			return nil
		})
	}
}

func printFoodRequests(out io.Writer, reqs []model.FoodRequest) {
	if len(reqs) == 0 {
		fmt.Fprintln(out, "요청이 없습니다")
		return
	}
	fmt.Fprintln(out, "ID\tNAME\tCATEGORY\tKCAL\tSTATUS")
	for _, r := range reqs {
		fmt.Fprintf(out, "%d\t%s\t%s\t%.1f\t%s\n", r.FoodRequestID, r.Name, r.Category, r.Calories, r.IsRegistered)
	}
}

func init() {
	requestSubmitCmd.Flags().StringVar(&reqName, "name", "", "Food name")
	requestSubmitCmd.Flags().StringVar(&reqCategory, "category", "", "Food category")
	requestSubmitCmd.Flags().Float64Var(&reqServingSize, "serving", 100, "Serving size")
	requestSubmitCmd.Flags().StringVar(&reqUnit, "unit", "g", "Serving unit")
	requestSubmitCmd.Flags().Float64Var(&reqCalories, "calories", 0, "Calories per 100g")
	requestSubmitCmd.Flags().Float64Var(&reqCarbs, "carbs", 0, "Carbs per 100g")
	requestSubmitCmd.Flags().Float64Var(&reqSugar, "sugar", 0, "Sugar per 100g")
	requestSubmitCmd.Flags().Float64Var(&reqProtein, "protein", 0, "Protein per 100g")
	requestSubmitCmd.Flags().Float64Var(&reqFat, "fat", 0, "Fat per 100g")
	requestCmd.AddCommand(requestSubmitCmd, requestMineCmd, requestListCmd, requestApproveCmd, requestRejectCmd)
	rootCmd.AddCommand(requestCmd)
}
