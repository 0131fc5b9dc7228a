package app

import (
	"context"
	"errors"
	"testing"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/db/mem"
	"github.com/brandlink/brandlink-be/model"
)

func TestSetTrending(t *testing.T) {
	db := mem.GetDatabase()
	postId := createTextPost(t, db, "author", model.CategoryInspirations)
	if _, err := ToggleLike(context.Background(), db, "u1", postId); err != nil {
		t.Fatal(err)
	}

	post, err := SetTrending(context.Background(), db, postId, true)
	if err != nil {
		t.Fatal(err)
	}
	if !post.Trending {
		t.Error("expected the trending flag to be set")
	}
	if post.LikeCount != 1 {
		t.Errorf("engagement state must survive a trending change, got %v likes", post.LikeCount)
	}

	// setting the same value again is a no-op
	post, err = SetTrending(context.Background(), db, postId, true)
	if err != nil {
		t.Fatal(err)
	}
	if !post.Trending {
		t.Error("repeated set should leave the flag set")
	}

	post, err = SetTrending(context.Background(), db, postId, false)
	if err != nil {
		t.Fatal(err)
	}
	if post.Trending {
		t.Error("expected the trending flag to be cleared")
	}
}

func TestSetTrendingMissingPost(t *testing.T) {
	db := mem.GetDatabase()
	if _, err := SetTrending(context.Background(), db, 404, true); !errors.Is(err, appDb.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
