package app

import (
	"context"
	"strconv"
	"time"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
)

// CategoryCursor pages through one category, newest first, keyed on
// (createdAt, id) so late inserts never shift earlier pages.
type CategoryCursor struct {
	Category model.Category `json:"category"`
	LastDate *time.Time     `json:"lastDate,omitempty"`
	LastId   string         `json:"lastId,omitempty"`
}

func (cc *CategoryCursor) Posts(ctx context.Context, db appDb.Database, viewer *model.User, cursorOpts *PostCursorOpts) (posts []*model.Post, cursor interface{}, err error) {
	if !cc.Category.IsValid() {
		return nil, nil, ErrUnknownCategory
	}
	posts, err = db.GetPosts(ctx, &appDb.PostsListQuery{
		Category: &cc.Category,
		From:     cc.LastDate,
		LastId:   cc.LastId,
		PostsListQueryOpts: &appDb.PostsListQueryOpts{
			Limit:         cursorOpts.Limit,
			LikeHistoryOf: viewerId(viewer),
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return posts, cc.buildCursorForNextPage(posts), nil
}

func (cc *CategoryCursor) buildCursorForNextPage(previousPosts []*model.Post) *CategoryCursor {
	if len(previousPosts) == 0 {
		return nil
	}
	last := previousPosts[len(previousPosts)-1]
	return &CategoryCursor{
		Category: cc.Category,
		LastDate: &last.CreatedAt,
		LastId:   strconv.FormatInt(last.Id, 10),
	}
}
