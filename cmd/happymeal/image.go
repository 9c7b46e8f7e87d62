package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/session"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Upload images",
}

var imageUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload an image and print its URL (for use in post drafts)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			url, err := c.UploadImage(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		})
	},
}

func init() {
	imageCmd.AddCommand(imageUploadCmd)
	rootCmd.AddCommand(imageCmd)
}
