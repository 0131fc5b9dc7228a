package app

import (
	"context"
	"testing"
	"time"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/db/mem"
	"github.com/brandlink/brandlink-be/model"
)

func TestCreatePostReturnsHydratedPost(t *testing.T) {
	db := mem.GetDatabase()
	post, err := CreatePost(context.Background(), db, &appDb.CreatePost{
		CreatorId: "author",
		Category:  model.CategoryInspirations,
		Kind:      model.KindPoll,
		Poll: &appDb.CreatePoll{
			Question: "Pick one",
			Options:  []string{"A", "B"},
			EndDate:  time.Now().Add(time.Hour),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if post.Id == 0 {
		t.Error("expected an assigned id")
	}
	if post.Creator == nil || post.Creator.Id != "author" {
		t.Errorf("expected the creator attached, got %+v", post.Creator)
	}
	if post.Kind != model.KindPoll || post.Poll == nil || len(post.Poll.Options) != 2 {
		t.Errorf("poll payload did not survive creation, got %+v", post)
	}
	if post.IsLiked || post.Poll.HasVoted {
		t.Errorf("a fresh post has no engagement from its creator, got %+v", post)
	}
	if post.LikeCount != 0 || post.CommentCount != 0 {
		t.Errorf("expected zero counts on a fresh post, got %+v", post)
	}
}
