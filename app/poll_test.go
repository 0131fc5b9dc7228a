package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/db/mem"
	"github.com/brandlink/brandlink-be/model"
)

func createPollPost(t *testing.T, db appDb.Database, endDate time.Time, options ...string) int64 {
	t.Helper()
	postId, err := db.CreatePost(context.Background(), &appDb.CreatePost{
		CreatorId: "author",
		Category:  model.CategoryStartupEssentials,
		Kind:      model.KindPoll,
		Poll: &appDb.CreatePoll{
			Question: "Pick one",
			Options:  options,
			EndDate:  endDate,
		},
	})
	if err != nil {
		t.Fatal("failed to create poll post", err)
	}
	return postId
}

func TestCastVoteScenario(t *testing.T) {
	db := mem.GetDatabase()
	postId := createPollPost(t, db, time.Now().Add(time.Hour), "A", "B")

	result, err := CastVote(context.Background(), db, "u1", postId, "A")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Accepted {
		t.Fatal("first vote should be accepted")
	}
	if result.Tally["A"] != 1 || result.Tally["B"] != 0 {
		t.Errorf("expected tally A:1 B:0, got %v", result.Tally)
	}

	results, err := GetPollResults(context.Background(), db, postId)
	if err != nil {
		t.Fatal(err)
	}
	if results.TotalVotes != 1 || results.Percentages["A"] != 100.0 || results.Percentages["B"] != 0.0 {
		t.Errorf("expected 100/0 split with 1 vote, got %+v", results)
	}

	// a second vote by the same user never recasts, even for another option
	result, err = CastVote(context.Background(), db, "u1", postId, "B")
	if err != nil {
		t.Fatal(err)
	}
	if result.Accepted || result.Rejection != VoteRejectionAlreadyVoted {
		t.Errorf("expected ALREADY_VOTED rejection, got %+v", result)
	}
	if result.Tally["A"] != 1 || result.Tally["B"] != 0 {
		t.Errorf("tally must be unchanged by a rejected vote, got %v", result.Tally)
	}
}

func TestCastVoteSameOptionTwice(t *testing.T) {
	db := mem.GetDatabase()
	postId := createPollPost(t, db, time.Now().Add(time.Hour), "A", "B")

	if _, err := CastVote(context.Background(), db, "u1", postId, "A"); err != nil {
		t.Fatal(err)
	}
	result, err := CastVote(context.Background(), db, "u1", postId, "A")
	if err != nil {
		t.Fatal(err)
	}
	if result.Accepted || result.Rejection != VoteRejectionAlreadyVoted {
		t.Errorf("resubmitting the same option must still be rejected, got %+v", result)
	}
}

func TestCastVoteExpiredPoll(t *testing.T) {
	db := mem.GetDatabase()
	postId := createPollPost(t, db, time.Now().Add(-time.Minute), "A", "B")

	result, err := CastVote(context.Background(), db, "u1", postId, "A")
	if err != nil {
		t.Fatal(err)
	}
	if result.Accepted || result.Rejection != VoteRejectionPollEnded {
		t.Errorf("expected POLL_ENDED rejection, got %+v", result)
	}

	results, err := GetPollResults(context.Background(), db, postId)
	if err != nil {
		t.Fatal(err)
	}
	if !results.Ended || results.TotalVotes != 0 {
		t.Errorf("expected an ended poll with no votes, got %+v", results)
	}
}

func TestCastVoteUnknownOption(t *testing.T) {
	db := mem.GetDatabase()
	postId := createPollPost(t, db, time.Now().Add(time.Hour), "A", "B")

	if _, err := CastVote(context.Background(), db, "u1", postId, "C"); !errors.Is(err, appDb.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
}

func TestCastVoteMissingPoll(t *testing.T) {
	db := mem.GetDatabase()
	postId := createTextPost(t, db, "author", model.CategoryInspirations)

	if _, err := CastVote(context.Background(), db, "u1", postId, "A"); !errors.Is(err, appDb.ErrNoPoll) {
		t.Errorf("expected ErrNoPoll, got %v", err)
	}
	if _, err := CastVote(context.Background(), db, "u1", 404, "A"); !errors.Is(err, appDb.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPollResultsMissingPostVsMissingPoll(t *testing.T) {
	db := mem.GetDatabase()
	if _, err := GetPollResults(context.Background(), db, 404); !errors.Is(err, appDb.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing post, got %v", err)
	}

	postId := createTextPost(t, db, "author", model.CategoryInspirations)
	if _, err := GetPollResults(context.Background(), db, postId); !errors.Is(err, appDb.ErrNoPoll) {
		t.Errorf("expected ErrNoPoll for a post without a poll, got %v", err)
	}
}

func TestCastVoteConcurrentVotersStayConsistent(t *testing.T) {
	db := mem.GetDatabase()
	postId := createPollPost(t, db, time.Now().Add(time.Hour), "A", "B")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			option := "A"
			if i%2 == 0 {
				option = "B"
			}
			if _, err := CastVote(context.Background(), db, fmt.Sprintf("u%v", i), postId, option); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	results, err := GetPollResults(context.Background(), db, postId)
	if err != nil {
		t.Fatal(err)
	}
	if results.TotalVotes != n {
		t.Errorf("expected %v total votes, got %v", n, results.TotalVotes)
	}
	// the vote sum always equals the voter count
	sum := 0
	for _, count := range results.Tally {
		sum += count
	}
	if sum != n {
		t.Errorf("tally sums to %v, want %v", sum, n)
	}
}
