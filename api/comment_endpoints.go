package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
)

func commentsPath(resourceID string) string {
	return fmt.Sprintf("/studienkolleg/%s/comments", url.PathEscape(resourceID))
}

func commentPath(resourceID string, commentID int64) string {
	return fmt.Sprintf("%s/%d", commentsPath(resourceID), commentID)
}

// ListComments fetches all comments for a resource in server order.
func (c *Client) ListComments(ctx context.Context, resourceID string) ([]Comment, error) {
	env, err := c.request(ctx, http.MethodGet, commentsPath(resourceID), nil, false)
	if err != nil {
		return nil, normalizeCommentError(err)
	}

	comments := make([]Comment, 0)
	if len(env.Data) > 0 {
		if err := decodeData(env, &comments); err != nil {
			return nil, err
		}
	}
	return comments, nil
}

// CreateComment posts a new comment. The server assigns id and createdAt.
func (c *Client) CreateComment(ctx context.Context, data CreateCommentRequest) (*Comment, error) {
	env, err := c.request(ctx, http.MethodPost, commentsPath(data.StudienkollegID), data, false)
	if err != nil {
		return nil, normalizeCommentError(err)
	}

	var comment Comment
	if err := decodeData(env, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment replaces a comment's title and content.
func (c *Client) UpdateComment(ctx context.Context, resourceID string, commentID int64, data UpdateCommentRequest) (*Comment, error) {
	env, err := c.request(ctx, http.MethodPut, commentPath(resourceID, commentID), data, false)
	if err != nil {
		return nil, normalizeCommentError(err)
	}

	var comment Comment
	if err := decodeData(env, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, resourceID string, commentID int64) error {
	_, err := c.request(ctx, http.MethodDelete, commentPath(resourceID, commentID), nil, false)
	return normalizeCommentError(err)
}

// LikeComment registers the current user's like on a comment.
func (c *Client) LikeComment(ctx context.Context, resourceID string, commentID int64) error {
	_, err := c.request(ctx, http.MethodPost, commentPath(resourceID, commentID)+"/like", nil, false)
	return normalizeCommentError(err)
}

// UnlikeComment withdraws the current user's like from a comment.
func (c *Client) UnlikeComment(ctx context.Context, resourceID string, commentID int64) error {
	_, err := c.request(ctx, http.MethodDelete, commentPath(resourceID, commentID)+"/like", nil, false)
	return normalizeCommentError(err)
}

// normalizeCommentError rewrites 401/403 on comment actions to the fixed
// user-facing "log in" failure. Other errors pass through untouched.
func normalizeCommentError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if !stderrors.As(err, &apiErr) {
		return err
	}
	if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
		return newAuthorizationError()
	}
	return err
}
