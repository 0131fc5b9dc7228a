package app

import (
	"context"
	"errors"
	"strings"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
	"github.com/brandlink/brandlink-be/util"
)

var ErrEmptyText = errors.New("text must not be empty")

// ToggleLike likes the post for the user, or removes the like if one exists.
// Calling it twice always lands back on the starting state.
func ToggleLike(ctx context.Context, db appDb.Database, userId string, postId int64) (*model.LikeStatus, error) {
	return db.ToggleLike(ctx, postId, userId)
}

func AddComment(ctx context.Context, db appDb.Database, userId string, postId int64, text string) (*model.Comment, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}
	return db.AppendComment(ctx, &appDb.CreateComment{
		PostId:    postId,
		CreatorId: userId,
		Text:      text,
	})
}

// AddReply appends at the single allowed nesting depth. commentId must be a
// comment of postId; reply ids are rejected as not found by the store.
func AddReply(ctx context.Context, db appDb.Database, userId string, postId int64, commentId int64, text string) (*model.Reply, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}
	return db.AppendReply(ctx, &appDb.CreateReply{
		PostId:    postId,
		CommentId: commentId,
		CreatorId: userId,
		Text:      text,
	})
}

func cleanText(text string) (string, error) {
	text = strings.TrimSpace(util.XSSSanitize(text))
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}
