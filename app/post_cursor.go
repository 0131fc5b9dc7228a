package app

import (
	"context"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
)

type PostCursorOpts struct {
	Limit int16
}

// PostCursor produces one page of a feed plus the cursor for the next page.
// Returned posts are hydrated for the given viewer (isLiked, hasVoted); the
// hydration is recomputed on every call, never persisted.
type PostCursor interface {
	Posts(ctx context.Context, db appDb.Database, viewer *model.User, opts *PostCursorOpts) (posts []*model.Post, cursor interface{}, err error)
}

type PostCursorType string

func viewerId(viewer *model.User) string {
	if viewer == nil {
		return ""
	}
	return viewer.Id
}
