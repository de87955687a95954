package comments

import "github.com/studienwege/go-client/api"

// likeToggle captures a comment's pre-toggle like state so an optimistic
// update can be applied immediately and restored exactly on failure.
type likeToggle struct {
	commentID int64
	prevCount int
	prevLiked bool
	liked     bool // post-state
}

func newLikeToggle(comment *api.Comment) likeToggle {
	return likeToggle{
		commentID: comment.ID,
		prevCount: comment.LikesCount,
		prevLiked: comment.IsLikedByCurrentUser,
		liked:     !comment.IsLikedByCurrentUser,
	}
}

func (t likeToggle) apply(comment *api.Comment) {
	comment.IsLikedByCurrentUser = t.liked
	if t.liked {
		comment.LikesCount = t.prevCount + 1
	} else {
		comment.LikesCount = t.prevCount - 1
	}
}

func (t likeToggle) revert(comment *api.Comment) {
	comment.IsLikedByCurrentUser = t.prevLiked
	comment.LikesCount = t.prevCount
}
