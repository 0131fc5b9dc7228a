package app

import (
	"context"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
)

// CreatePost stores the post and returns it as the creator would see it,
// so the caller can render it without a follow-up fetch.
func CreatePost(ctx context.Context, db appDb.Database, req *appDb.CreatePost) (*model.Post, error) {
	id, err := db.CreatePost(ctx, req)
	if err != nil {
		return nil, err
	}
	return db.GetPostById(ctx, id, &appDb.PostQueryOpts{LikeHistoryOf: req.CreatorId})
}
