package app

import (
	"context"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
)

// SetTrending flips the moderation flag and returns the post as it now
// stands. Repeating the call with the same value is a no-op. Engagement state
// is untouched either way.
func SetTrending(ctx context.Context, db appDb.Database, postId int64, trending bool) (*model.Post, error) {
	if err := db.SetTrending(ctx, postId, trending); err != nil {
		return nil, err
	}
	return db.GetPostById(ctx, postId, &appDb.PostQueryOpts{})
}
