package app

import (
	"context"
	"strconv"
	"time"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
)

// TrendingCursor pages through posts carrying the moderation-set trending
// flag, across all categories.
type TrendingCursor struct {
	LastDate *time.Time `json:"lastDate,omitempty"`
	LastId   string     `json:"lastId,omitempty"`
}

func (tc *TrendingCursor) Posts(ctx context.Context, db appDb.Database, viewer *model.User, cursorOpts *PostCursorOpts) (posts []*model.Post, cursor interface{}, err error) {
	posts, err = db.GetPosts(ctx, &appDb.PostsListQuery{
		TrendingOnly: true,
		From:         tc.LastDate,
		LastId:       tc.LastId,
		PostsListQueryOpts: &appDb.PostsListQueryOpts{
			Limit:         cursorOpts.Limit,
			LikeHistoryOf: viewerId(viewer),
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return posts, tc.buildCursorForNextPage(posts), nil
}

func (tc *TrendingCursor) buildCursorForNextPage(previousPosts []*model.Post) *TrendingCursor {
	if len(previousPosts) == 0 {
		return nil
	}
	last := previousPosts[len(previousPosts)-1]
	return &TrendingCursor{
		LastDate: &last.CreatedAt,
		LastId:   strconv.FormatInt(last.Id, 10),
	}
}
