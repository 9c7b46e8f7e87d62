package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jxhee99/HappyMeal/internal/model"
)

type BoardDraft struct {
	Title      string        `json:"title"`
	CategoryID int           `json:"categoryId"`
	Blocks     []model.Block `json:"blocks"`
}

// GetBoards lists posts, optionally narrowed to one category.
func (c *Client) GetBoards(ctx context.Context, q PageQuery, categoryID int) (model.Page[model.Board], error) {
	v := q.values()
	if categoryID > 0 {
		v.Set("categoryId", strconv.Itoa(categoryID))
	}
	var page model.Page[model.Board]
	err := c.do(ctx, http.MethodGet, "/boards", v, nil, &page)
	return page, err
}

func (c *Client) SearchBoardsByTitle(ctx context.Context, title string, q PageQuery) (model.Page[model.Board], error) {
	var page model.Page[model.Board]
	if strings.TrimSpace(title) == "" {
		return page, fmt.Errorf("search title is required")
	}
	v := q.values()
	v.Set("title", title)
	err := c.do(ctx, http.MethodGet, "/boards/search/title", v, nil, &page)
	return page, err
}

func (c *Client) SearchBoardsByAuthor(ctx context.Context, nickname string, q PageQuery) (model.Page[model.Board], error) {
	var page model.Page[model.Board]
	if strings.TrimSpace(nickname) == "" {
		return page, fmt.Errorf("search nickname is required")
	}
	v := q.values()
	v.Set("nickname", nickname)
	err := c.do(ctx, http.MethodGet, "/boards/search/author", v, nil, &page)
	return page, err
}

func (c *Client) GetBoard(ctx context.Context, boardID int64) (model.Board, error) {
	var board model.Board
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards/%d", boardID), nil, nil, &board)
	return board, err
}

func (c *Client) CreateBoard(ctx context.Context, draft BoardDraft) (model.Board, error) {
	var board model.Board
	err := c.do(ctx, http.MethodPost, "/boards", nil, draft, &board)
	return board, err
}

func (c *Client) UpdateBoard(ctx context.Context, boardID int64, draft BoardDraft) (model.Board, error) {
	var board model.Board
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/boards/%d", boardID), nil, draft, &board)
	return board, err
}

func (c *Client) DeleteBoard(ctx context.Context, boardID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/boards/%d", boardID), nil, nil, nil)
}

// ToggleLike flips the caller's like on a post. The response is not
// trusted for the shared count; callers refetch via GetLikeStatus.
func (c *Client) ToggleLike(ctx context.Context, boardID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/boards/%d/like", boardID), nil, nil, nil)
}

func (c *Client) GetLikeStatus(ctx context.Context, boardID int64) (model.LikeStatus, error) {
	var status model.LikeStatus
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards/%d/like", boardID), nil, nil, &status)
	return status, err
}

func (c *Client) GetLikesCount(ctx context.Context, boardID int64) (int, error) {
	var count struct {
		LikesCount int `json:"likesCount"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards/%d/likes/count", boardID), nil, nil, &count)
	return count.LikesCount, err
}

func (c *Client) GetLikedBoards(ctx context.Context, q PageQuery) (model.Page[model.Board], error) {
	var page model.Page[model.Board]
	err := c.do(ctx, http.MethodGet, "/boards/liked", q.values(), nil, &page)
	return page, err
}

type CommentDraft struct {
	Content         string `json:"content"`
	ParentCommentID *int64 `json:"parentCommentId,omitempty"`
}

func (c *Client) CreateComment(ctx context.Context, boardID int64, draft CommentDraft) (model.Comment, error) {
	var comment model.Comment
	if strings.TrimSpace(draft.Content) == "" {
		return comment, fmt.Errorf("comment content is required")
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/boards/%d/comments", boardID), nil, draft, &comment)
	return comment, err
}

func (c *Client) GetComments(ctx context.Context, boardID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards/%d/comments", boardID), nil, nil, &comments)
	return comments, err
}

func (c *Client) DeleteComment(ctx context.Context, boardID, commentID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d/%d", boardID, commentID), nil, nil, nil)
}
