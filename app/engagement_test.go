package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/db/mem"
	"github.com/brandlink/brandlink-be/model"
)

func createTextPost(t *testing.T, db appDb.Database, creatorId string, category model.Category) int64 {
	t.Helper()
	postId, err := db.CreatePost(context.Background(), &appDb.CreatePost{
		CreatorId: creatorId,
		Category:  category,
		Kind:      model.KindText,
		Text:      "hello",
	})
	if err != nil {
		t.Fatal("failed to create post", err)
	}
	return postId
}

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	db := mem.GetDatabase()
	postId := createTextPost(t, db, "author", model.CategoryInspirations)

	status, err := ToggleLike(context.Background(), db, "u1", postId)
	if err != nil {
		t.Fatal(err)
	}
	if !status.IsLiked || status.LikesCount != 1 {
		t.Errorf("expected liked with count 1, got %+v", status)
	}

	status, err = ToggleLike(context.Background(), db, "u1", postId)
	if err != nil {
		t.Fatal(err)
	}
	if status.IsLiked || status.LikesCount != 0 {
		t.Errorf("expected unliked with count 0, got %+v", status)
	}
}

func TestToggleLikeConcurrentDistinctUsers(t *testing.T) {
	db := mem.GetDatabase()
	postId := createTextPost(t, db, "author", model.CategoryInspirations)

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := ToggleLike(context.Background(), db, fmt.Sprintf("u%v", i), postId); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	post, err := db.GetPostById(context.Background(), postId, &appDb.PostQueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if post.LikeCount != n {
		t.Errorf("expected %v likes after %v distinct concurrent toggles, got %v", n, n, post.LikeCount)
	}
}

func TestToggleLikeMissingPost(t *testing.T) {
	db := mem.GetDatabase()
	if _, err := ToggleLike(context.Background(), db, "u1", 404); !errors.Is(err, appDb.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCommentEmptyText(t *testing.T) {
	db := mem.GetDatabase()
	postId := createTextPost(t, db, "author", model.CategoryInspirations)

	for _, text := range []string{"", "   "} {
		if _, err := AddComment(context.Background(), db, "u1", postId, text); !errors.Is(err, ErrEmptyText) {
			t.Errorf("expected ErrEmptyText for %q, got %v", text, err)
		}
	}

	post, err := db.GetPostById(context.Background(), postId, &appDb.PostQueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if post.CommentCount != 0 {
		t.Errorf("rejected comments must not be applied, got count %v", post.CommentCount)
	}
}

func TestAddCommentAndReply(t *testing.T) {
	db := mem.GetDatabase()
	postId := createTextPost(t, db, "author", model.CategoryInspirations)

	comment, err := AddComment(context.Background(), db, "u1", postId, "great point")
	if err != nil {
		t.Fatal(err)
	}
	if comment.Text != "great point" {
		t.Errorf("unexpected comment text %q", comment.Text)
	}

	reply, err := AddReply(context.Background(), db, "u2", postId, comment.Id, "nice")
	if err != nil {
		t.Fatal(err)
	}

	post, err := db.GetPostById(context.Background(), postId, &appDb.PostQueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(post.Comments) != 1 || len(post.Comments[0].Replies) != 1 {
		t.Fatalf("expected 1 comment with 1 reply, got %+v", post.Comments)
	}
	if post.Comments[0].Replies[0].Id != reply.Id {
		t.Error("stored reply does not match the returned one")
	}
}

func TestRepliesAreNotCommentable(t *testing.T) {
	db := mem.GetDatabase()
	postId := createTextPost(t, db, "author", model.CategoryInspirations)

	comment, err := AddComment(context.Background(), db, "u1", postId, "first")
	if err != nil {
		t.Fatal(err)
	}
	reply, err := AddReply(context.Background(), db, "u2", postId, comment.Id, "nice")
	if err != nil {
		t.Fatal(err)
	}

	// a reply id is never a valid reply target
	if _, err := AddReply(context.Background(), db, "u3", postId, reply.Id, "nested"); !errors.Is(err, appDb.ErrNotFound) {
		t.Errorf("expected ErrNotFound when replying to a reply, got %v", err)
	}
}

func TestAddCommentSanitizesText(t *testing.T) {
	db := mem.GetDatabase()
	postId := createTextPost(t, db, "author", model.CategoryInspirations)

	comment, err := AddComment(context.Background(), db, "u1", postId, `hello <script>alert("x")</script>`)
	if err != nil {
		t.Fatal(err)
	}
	if comment.Text != "hello" {
		t.Errorf("expected script tags stripped, got %q", comment.Text)
	}
}
