package app

import (
	"context"
	"errors"
	"time"

	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
)

const (
	VoteRejectionAlreadyVoted = "ALREADY_VOTED"
	VoteRejectionPollEnded    = "POLL_ENDED"
)

// VoteResult is what the caller renders after a vote attempt. Business-rule
// rejections (already voted, poll ended) come back as Accepted=false with the
// current tally rather than as errors: the caller shows them as an
// informational message next to the results.
type VoteResult struct {
	Accepted  bool           `json:"accepted"`
	Rejection string         `json:"rejection,omitempty"`
	Tally     map[string]int `json:"tally"`
}

func CastVote(ctx context.Context, db appDb.Database, userId string, postId int64, option string) (*VoteResult, error) {
	tally, err := db.CastVote(ctx, postId, userId, option, time.Now())
	if err == nil {
		return &VoteResult{Accepted: true, Tally: tally}, nil
	}

	var rejection string
	switch {
	case errors.Is(err, appDb.ErrAlreadyVoted):
		rejection = VoteRejectionAlreadyVoted
	case errors.Is(err, appDb.ErrPollExpired):
		rejection = VoteRejectionPollEnded
	default:
		return nil, err
	}

	poll, err := db.GetPoll(ctx, postId, &appDb.PostQueryOpts{LikeHistoryOf: userId})
	if err != nil {
		return nil, err
	}
	return &VoteResult{Accepted: false, Rejection: rejection, Tally: poll.Votes}, nil
}

// GetPollResults evaluates expiry lazily against the clock; there is no
// stored ended flag anywhere.
func GetPollResults(ctx context.Context, db appDb.Database, postId int64) (*model.PollResults, error) {
	poll, err := db.GetPoll(ctx, postId, &appDb.PostQueryOpts{})
	if err != nil {
		return nil, err
	}
	return poll.Results(time.Now()), nil
}
