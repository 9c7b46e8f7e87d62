package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/blocks"
	"github.com/jxhee99/HappyMeal/internal/controller"
	"github.com/jxhee99/HappyMeal/internal/model"
	"github.com/jxhee99/HappyMeal/internal/session"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Read and write community posts",
}

var (
	boardPage     int
	boardSize     int
	boardSort     string
	boardCategory int
)

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			lister := controller.NewLister(func(ctx context.Context, q api.PageQuery, filter string) (model.Page[model.Board], error) {
				return c.GetBoards(ctx, q, boardCategory)
			}, boardSize, boardSort)
			lister.SetPage(ctx, boardPage)
			if err := lister.Wait(ctx); err != nil {
				return err
			}
			return renderBoardSnapshot(cmd.OutOrStdout(), lister.Snapshot())
		})
	},
}

var boardSearchAuthor bool

var boardSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search posts by title, or by author with --author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			fetch := func(ctx context.Context, q api.PageQuery, filter string) (model.Page[model.Board], error) {
				if boardSearchAuthor {
					return c.SearchBoardsByAuthor(ctx, filter, q)
				}
				return c.SearchBoardsByTitle(ctx, filter, q)
			}
			lister := controller.NewLister(fetch, boardSize, "")
			lister.SetQuery(ctx, args[0], boardPage)
			if err := lister.Wait(ctx); err != nil {
				return err
			}
			return renderBoardSnapshot(cmd.OutOrStdout(), lister.Snapshot())
		})
	},
}

var boardReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Read a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("board id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			board, err := c.GetBoard(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "#%d %s\n", board.BoardID, board.Title)
			fmt.Fprintf(out, "by %s · views %d · likes %d · comments %d\n\n", board.Nickname, board.Views, board.LikesCount, board.CommentsCount)
			fmt.Fprintln(out, blocks.Render(board.Blocks))

			comments, err := c.GetComments(ctx, id)
			if err != nil {
				return err
			}
			printComments(out, comments, s.User())
			return nil
		})
	},
}

var (
	boardTitle      string
	boardCategoryID int
	boardFile       string
)

// readDraftContent loads the post body from --file or stdin.
func readDraftContent(cmd *cobra.Command) (string, error) {
	if boardFile != "" {
		raw, err := os.ReadFile(boardFile)
		if err != nil {
			return "", fmt.Errorf("read draft file: %w", err)
		}
		return string(raw), nil
	}
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read draft from stdin: %w", err)
	}
	return string(raw), nil
}

type boardDraftInput struct {
	Title      string
	CategoryID int
	Content    string
}

func validateBoardDraft(d boardDraftInput) error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if d.CategoryID <= 0 {
		return fmt.Errorf("category is required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

var boardWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a post (body from --file or stdin, images as ![caption](url))",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readDraftContent(cmd)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			var created model.Board
			form := controller.NewForm(
				boardDraftInput{Title: boardTitle, CategoryID: boardCategoryID, Content: content},
				validateBoardDraft,
				func(ctx context.Context, d boardDraftInput) error {
					board, err := c.CreateBoard(ctx, api.BoardDraft{
						Title:      d.Title,
						CategoryID: d.CategoryID,
						Blocks:     blocks.Parse(d.Content),
					})
					if err != nil {
						return err
					}
					created = board
					return nil
				})
			if err := form.Submit(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted #%d\n", created.BoardID)
			return nil
		})
	},
}

var boardEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("board id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			current, err := c.GetBoard(ctx, id)
			if err != nil {
				return err
			}
			if u := s.User(); u == nil || u.UserID != current.UserID {
				return fmt.Errorf("only the author can edit this post")
			}

			// The draft starts from the fetched post; flags override.
			draft := boardDraftInput{
				Title:      current.Title,
				CategoryID: current.CategoryID,
				Content:    blocks.Render(current.Blocks),
			}
			if cmd.Flags().Changed("title") {
				draft.Title = boardTitle
			}
			if cmd.Flags().Changed("category") {
				draft.CategoryID = boardCategoryID
			}
			if cmd.Flags().Changed("file") || boardFile == "" && stdinHasData(cmd) {
				content, err := readDraftContent(cmd)
				if err != nil {
					return err
				}
				draft.Content = content
			}

			form := controller.NewForm(draft, validateBoardDraft, func(ctx context.Context, d boardDraftInput) error {
				_, err := c.UpdateBoard(ctx, id, api.BoardDraft{
					Title:      d.Title,
					CategoryID: d.CategoryID,
					Blocks:     blocks.Parse(d.Content),
				})
				return err
			})
			if err := form.Submit(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated")
			return nil
		})
	},
}

func stdinHasData(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

var boardDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("board id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			if err := c.DeleteBoard(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
			return nil
		})
	},
}

var boardLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Toggle your like on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("board id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			toggler := controller.NewLikeToggler(c, id)
			status, err := toggler.Toggle(ctx)
			if err != nil && !errors.Is(err, controller.ErrToggleInFlight) {
				return err
			}
			state := "liked"
			if !status.Liked {
				state = "unliked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s · likes %d\n", state, status.LikesCount)
			return nil
		})
	},
}

var (
	commentParent int64
)

var boardCommentCmd = &cobra.Command{
	Use:   "comment <board-id> <content>",
	Short: "Comment on a post (use --reply-to for one-level replies)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("board id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			draft := api.CommentDraft{Content: args[1]}
			if commentParent > 0 {
				// Replies may only target top-level comments.
				comments, err := c.GetComments(ctx, id)
				if err != nil {
					return err
				}
				for _, cm := range comments {
					if cm.CommentID == commentParent && cm.ParentCommentID != nil {
						return fmt.Errorf("cannot reply to a reply")
					}
				}
				parent := commentParent
				draft.ParentCommentID = &parent
			}
			if _, err := c.CreateComment(ctx, id, draft); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Commented")
			return nil
		})
	},
}

var boardUncommentCmd = &cobra.Command{
	Use:   "uncomment <board-id> <comment-id>",
	Short: "Delete your comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		boardID, err := parseInt64Arg("board id", args[0])
		if err != nil {
			return err
		}
		commentID, err := parseInt64Arg("comment id", args[1])
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			comments, err := c.GetComments(ctx, boardID)
			if err != nil {
				return err
			}
			u := s.User()
			for _, cm := range comments {
				if cm.CommentID != commentID {
					continue
				}
				if u == nil || u.UserID != cm.UserID {
					return fmt.Errorf("only the author can delete this comment")
				}
			}
			if err := c.DeleteComment(ctx, boardID, commentID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
			return nil
		})
	},
}

var boardLikedCmd = &cobra.Command{
	Use:   "liked",
	Short: "List posts you liked",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *api.Client, s *session.Store) error {
			page, err := c.GetLikedBoards(ctx, api.PageQuery{Page: boardPage, Size: boardSize})
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

func renderBoardSnapshot(out io.Writer, snap controller.Snapshot[model.Board]) error {
	switch snap.Phase() {
	case controller.PhaseError:
		return snap.Err
	case controller.PhaseEmpty:
		fmt.Fprintln(out, "검색 결과가 없습니다")
		return nil
	default:
		printBoardRows(out, snap.Items)
		fmt.Fprintf(out, "page %d/%d (%d posts)\n", snap.Page+1, snap.TotalPages, snap.Total)
		return nil
	}
}

func printBoardRows(out io.Writer, boards []model.Board) {
	fmt.Fprintln(out, "ID\tTITLE\tAUTHOR\tVIEWS\tLIKES\tCOMMENTS")
	for _, b := range boards {
		fmt.Fprintf(out, "%d\t%s\t%s\t%d\t%d\t%d\n", b.BoardID, b.Title, b.Nickname, b.Views, b.LikesCount, b.CommentsCount)
	}
}

// printComments renders top-level comments with their replies indented
// one level; the delete hint only appears on the viewer's own comments.
func printComments(out io.Writer, comments []model.Comment, viewer *model.User) {
	if len(comments) == 0 {
		return
	}
	fmt.Fprintf(out, "\ncomments (%d):\n", len(comments))
	for _, c := range comments {
		if c.ParentCommentID != nil {
			continue
		}
		printComment(out, c, viewer, "")
		for _, r := range comments {
			if r.ParentCommentID != nil && *r.ParentCommentID == c.CommentID {
				printComment(out, r, viewer, "  ")
			}
		}
	}
}

func printComment(out io.Writer, c model.Comment, viewer *model.User, indent string) {
	owner := ""
	if viewer != nil && viewer.UserID == c.UserID {
		owner = " (yours)"
	}
	fmt.Fprintf(out, "%s[%d] %s%s: %s\n", indent, c.CommentID, c.Nickname, owner, c.Content)
}

func init() {
	for _, c := range []*cobra.Command{boardListCmd, boardSearchCmd, boardLikedCmd} {
		c.Flags().IntVar(&boardPage, "page", 0, "Page number (0-based)")
		c.Flags().IntVar(&boardSize, "size", 10, "Items per page")
	}
	boardListCmd.Flags().StringVar(&boardSort, "sort", "latest", "Sort order")
	boardListCmd.Flags().IntVar(&boardCategory, "category", 0, "Only posts in this category")
	boardSearchCmd.Flags().BoolVar(&boardSearchAuthor, "author", false, "Search by author nickname instead of title")
	for _, c := range []*cobra.Command{boardWriteCmd, boardEditCmd} {
		c.Flags().StringVar(&boardTitle, "title", "", "Post title")
		c.Flags().IntVar(&boardCategoryID, "category", 0, "Category ID")
		c.Flags().StringVar(&boardFile, "file", "", "File holding the post body")
	}
	boardCommentCmd.Flags().Int64Var(&commentParent, "reply-to", 0, "Top-level comment ID to reply to")
	boardCmd.AddCommand(boardListCmd, boardSearchCmd, boardReadCmd, boardWriteCmd, boardEditCmd,
		boardDeleteCmd, boardLikeCmd, boardLikedCmd, boardCommentCmd, boardUncommentCmd)
	rootCmd.AddCommand(boardCmd)
}
