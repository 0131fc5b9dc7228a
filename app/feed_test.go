package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/db/mem"
	"github.com/brandlink/brandlink-be/model"
)

func TestCategoryCursorFiltersAndOrders(t *testing.T) {
	db := mem.GetDatabase()
	first := createTextPost(t, db, "author", model.CategoryStartupEssentials)
	createTextPost(t, db, "author", model.CategoryInspirations)
	second := createTextPost(t, db, "author", model.CategoryStartupEssentials)

	cursor := &CategoryCursor{Category: model.CategoryStartupEssentials}
	posts, _, err := cursor.Posts(context.Background(), db, nil, &PostCursorOpts{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts in category, got %v", len(posts))
	}
	// newest first
	if posts[0].Id != second || posts[1].Id != first {
		t.Errorf("expected [%v %v], got [%v %v]", second, first, posts[0].Id, posts[1].Id)
	}
	for _, post := range posts {
		if post.Category != model.CategoryStartupEssentials {
			t.Errorf("post %v has category %v", post.Id, post.Category)
		}
	}
}

func TestCategoryCursorPagination(t *testing.T) {
	db := mem.GetDatabase()
	const total = 5
	for i := 0; i < total; i++ {
		createTextPost(t, db, "author", model.CategoryFinanceInvestment)
	}

	seen := make(map[int64]bool)
	cursor := &CategoryCursor{Category: model.CategoryFinanceInvestment}
	for cursor != nil {
		posts, next, err := cursor.Posts(context.Background(), db, nil, &PostCursorOpts{Limit: 2})
		if err != nil {
			t.Fatal(err)
		}
		for _, post := range posts {
			if seen[post.Id] {
				t.Errorf("post %v returned on more than one page", post.Id)
			}
			seen[post.Id] = true
		}
		cursor = next.(*CategoryCursor)
	}
	if len(seen) != total {
		t.Errorf("expected %v posts across all pages, got %v", total, len(seen))
	}
}

func TestCategoryCursorUnknownCategory(t *testing.T) {
	db := mem.GetDatabase()
	cursor := &CategoryCursor{Category: "NOT_A_CATEGORY"}
	if _, _, err := cursor.Posts(context.Background(), db, nil, &PostCursorOpts{Limit: 10}); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestTrendingCursor(t *testing.T) {
	db := mem.GetDatabase()
	trendingId := createTextPost(t, db, "author", model.CategoryStartupEssentials)
	createTextPost(t, db, "author", model.CategoryInspirations)
	if err := db.SetTrending(context.Background(), trendingId, true); err != nil {
		t.Fatal(err)
	}

	cursor := &TrendingCursor{}
	posts, _, err := cursor.Posts(context.Background(), db, nil, &PostCursorOpts{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Id != trendingId {
		t.Fatalf("expected only post %v, got %+v", trendingId, posts)
	}
	if !posts[0].Trending {
		t.Error("returned post should carry the trending flag")
	}
}

func TestByAuthorCursor(t *testing.T) {
	db := mem.GetDatabase()
	mine := createTextPost(t, db, "alice", model.CategoryStartupEssentials)
	createTextPost(t, db, "bob", model.CategoryStartupEssentials)

	cursor := &ByAuthorCursor{AuthorId: "alice"}
	posts, _, err := cursor.Posts(context.Background(), db, nil, &PostCursorOpts{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Id != mine {
		t.Fatalf("expected only alice's post %v, got %+v", mine, posts)
	}

	empty := &ByAuthorCursor{}
	if _, _, err := empty.Posts(context.Background(), db, nil, &PostCursorOpts{Limit: 10}); !errors.Is(err, ErrMissingAuthor) {
		t.Errorf("expected ErrMissingAuthor, got %v", err)
	}
}

func TestFeedHydratesViewerLikeState(t *testing.T) {
	db := mem.GetDatabase()
	postId := createTextPost(t, db, "author", model.CategoryInspirations)
	if _, err := ToggleLike(context.Background(), db, "viewer", postId); err != nil {
		t.Fatal(err)
	}

	cursor := &CategoryCursor{Category: model.CategoryInspirations}
	posts, _, err := cursor.Posts(context.Background(), db, &model.User{Id: "viewer"}, &PostCursorOpts{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if !posts[0].IsLiked || posts[0].LikeCount != 1 {
		t.Errorf("expected viewer hydration isLiked=true count=1, got %+v", posts[0])
	}

	// anonymous and other viewers see the count but no like state
	posts, _, err = cursor.Posts(context.Background(), db, nil, &PostCursorOpts{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if posts[0].IsLiked || posts[0].LikeCount != 1 {
		t.Errorf("expected anonymous hydration isLiked=false count=1, got %+v", posts[0])
	}
}

func TestFeedHydratesViewerVoteState(t *testing.T) {
	db := mem.GetDatabase()
	postId := createPollPost(t, db, time.Now().Add(time.Hour), "A", "B")
	if _, err := CastVote(context.Background(), db, "viewer", postId, "A"); err != nil {
		t.Fatal(err)
	}

	post, err := db.GetPostById(context.Background(), postId, &appDb.PostQueryOpts{LikeHistoryOf: "viewer"})
	if err != nil {
		t.Fatal(err)
	}
	if !post.Poll.HasVoted {
		t.Error("voter should see hasVoted=true")
	}

	post, err = db.GetPostById(context.Background(), postId, &appDb.PostQueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if post.Poll.HasVoted {
		t.Error("anonymous viewer should see hasVoted=false")
	}
}

func TestTaggedUnionCursorUnmarshal(t *testing.T) {
	var cursor TaggedUnionCursor
	payload := `{"cursorType": "CATEGORY", "cursor": {"category": "INSPIRATIONS"}}`
	if err := json.Unmarshal([]byte(payload), &cursor); err != nil {
		t.Fatal(err)
	}
	categoryCursor, ok := cursor.PostCursor.(*CategoryCursor)
	if !ok {
		t.Fatalf("expected a category cursor, got %T", cursor.PostCursor)
	}
	if categoryCursor.Category != model.CategoryInspirations {
		t.Errorf("unexpected category %v", categoryCursor.Category)
	}

	payload = `{"cursorType": "BY_AUTHOR", "cursor": {"authorId": "alice"}}`
	if err := json.Unmarshal([]byte(payload), &cursor); err != nil {
		t.Fatal(err)
	}
	if authorCursor, ok := cursor.PostCursor.(*ByAuthorCursor); !ok || authorCursor.AuthorId != "alice" {
		t.Errorf("expected a by-author cursor for alice, got %+v", cursor.PostCursor)
	}

	payload = `{"cursorType": "NOPE"}`
	if err := json.Unmarshal([]byte(payload), &cursor); !errors.Is(err, ErrUnknownCursorType) {
		t.Errorf("expected ErrUnknownCursorType, got %v", err)
	}
}
