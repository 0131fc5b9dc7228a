package app

import (
	"context"
	"strconv"
	"time"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
)

// ByAuthorCursor pages through a single author's posts, any category.
type ByAuthorCursor struct {
	AuthorId string     `json:"authorId"`
	LastDate *time.Time `json:"lastDate,omitempty"`
	LastId   string     `json:"lastId,omitempty"`
}

func (bac *ByAuthorCursor) Posts(ctx context.Context, db appDb.Database, viewer *model.User, cursorOpts *PostCursorOpts) (posts []*model.Post, cursor interface{}, err error) {
	if bac.AuthorId == "" {
		return nil, nil, ErrMissingAuthor
	}
	posts, err = db.GetPosts(ctx, &appDb.PostsListQuery{
		ByUser: bac.AuthorId,
		From:   bac.LastDate,
		LastId: bac.LastId,
		PostsListQueryOpts: &appDb.PostsListQueryOpts{
			Limit:         cursorOpts.Limit,
			LikeHistoryOf: viewerId(viewer),
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return posts, bac.buildCursorForNextPage(posts), nil
}

func (bac *ByAuthorCursor) buildCursorForNextPage(previousPosts []*model.Post) *ByAuthorCursor {
	if len(previousPosts) == 0 {
		return nil
	}
	last := previousPosts[len(previousPosts)-1]
	return &ByAuthorCursor{
		AuthorId: bac.AuthorId,
		LastDate: &last.CreatedAt,
		LastId:   strconv.FormatInt(last.Id, 10),
	}
}
