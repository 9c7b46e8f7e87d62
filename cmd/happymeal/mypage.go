package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/session"
)

var mypageCmd = &cobra.Command{
	Use:   "mypage",
	Short: "Your profile and activity",
}

var (
	mypagePage int
	mypageSize int
)

var mypageProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			p, err := c.GetProfile(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ID: %d\nNickname: %s\nEmail: %s\nRole: %s\n", p.UserID, p.Nickname, p.Email, p.Role)
			return nil
		})
	},
}

var mypageNickname string

var mypageUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			p, err := c.UpdateProfile(ctx, mypageNickname)
			if err != nil {
				return err
			}
			// Keep the stored session in step with the server.
			if u := s.User(); u != nil {
				u.Nickname = p.Nickname
				if err := s.Login(*u, s.TokenPair()); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Nickname is now %s\n", p.Nickname)
			return nil
		})
	},
}

var mypagePostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List your posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			page, err := c.GetMyPosts(ctx, api.PageQuery{Page: mypagePage, Size: mypageSize})
			if err != nil {
				return err
			}
			if len(page.Content) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "검색 결과가 없습니다")
				return nil
			}
			printBoardRows(cmd.OutOrStdout(), page.Content)
			return nil
		})
	},
}

var mypageCommentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "List your comments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			page, err := c.GetMyComments(ctx, api.PageQuery{Page: mypagePage, Size: mypageSize})
			if err != nil {
				return err
			}
			if len(page.Content) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "검색 결과가 없습니다")
				return nil
			}
			for _, cm := range page.Content {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d] board %d: %s\n", cm.CommentID, cm.BoardID, cm.Content)
			}
			return nil
		})
	},
}

var mypageLikesCmd = &cobra.Command{
	Use:   "likes",
	Short: "List posts you liked",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			page, err := c.GetMyLikes(ctx, api.PageQuery{Page: mypagePage, Size: mypageSize})
			if err != nil {
				return err
			}
			if len(page.Content) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "검색 결과가 없습니다")
				return nil
			}
			printBoardRows(cmd.OutOrStdout(), page.Content)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{mypagePostsCmd, mypageCommentsCmd, mypageLikesCmd} {
		c.Flags().IntVar(&mypagePage, "page", 0, "Page number (0-based)")
		c.Flags().IntVar(&mypageSize, "size", 10, "Items per page")
	}
	mypageUpdateCmd.Flags().StringVar(&mypageNickname, "nickname", "", "New nickname")
	mypageCmd.AddCommand(mypageProfileCmd, mypageUpdateCmd, mypagePostsCmd, mypageCommentsCmd, mypageLikesCmd)
	rootCmd.AddCommand(mypageCmd)
}
