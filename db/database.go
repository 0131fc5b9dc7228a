package db

import (
	"context"
	"time"

	"github.com/brandlink/brandlink-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	PostDatabase
	EngagementDatabase
	UserDatabase
	Close() error
}

type CreatePoll struct {
	Question string
	Options  []string
	EndDate  time.Time
}

type CreatePost struct {
	CreatorId string
	Category  model.Category
	Kind      model.Kind
	Text      string
	Media     *model.Media
	Event     *model.Event
	Occasion  *model.Occasion
	Job       *model.JobOpening
	Document  *model.Document
	Poll      *CreatePoll
}

type CreateComment struct {
	PostId    int64
	CreatorId string
	Text      string
}

type CreateReply struct {
	PostId    int64
	CommentId int64
	CreatorId string
	Text      string
}

// PostQueryOpts configures viewer-specific hydration for single-post reads.
// LikeHistoryOf is the viewer's user id or "" for anonymous viewers.
type PostQueryOpts struct {
	LikeHistoryOf string
}

type PostsListQueryOpts struct {
	Limit         int16
	LikeHistoryOf string
}

// PostsListQuery pages with a keyset cursor on (created_at, id) rather than
// offsets: From/LastId carry the previous page's tail.
type PostsListQuery struct {
	Category     *model.Category
	TrendingOnly bool
	ByUser       string
	From         *time.Time
	LastId       string
	*PostsListQueryOpts
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	GetPostById(ctx context.Context, id int64, opts *PostQueryOpts) (*model.Post, error)
	GetPosts(ctx context.Context, query *PostsListQuery) ([]*model.Post, error)
	// SetTrending flips the moderation flag only. It never touches engagement
	// state and is a no-op when the flag already has the requested value.
	SetTrending(ctx context.Context, postId int64, trending bool) error
}

// EngagementDatabase covers the mutations that must be atomic per post:
// concurrent calls against the same post serialize, calls against different
// posts proceed in parallel.
type EngagementDatabase interface {
	// ToggleLike adds the user to the post's like set, or removes them if
	// already present. The returned status reflects the state this call
	// produced.
	ToggleLike(ctx context.Context, postId int64, userId string) (*model.LikeStatus, error)
	AppendComment(ctx context.Context, req *CreateComment) (*model.Comment, error)
	// AppendReply fails with ErrNotFound unless commentId is a comment of
	// postId. Reply ids are not valid targets.
	AppendReply(ctx context.Context, req *CreateReply) (*model.Reply, error)
	// CastVote records a vote for option at time now. It fails with
	// ErrPollExpired past the poll's end date, ErrAlreadyVoted if the user is
	// in the voter set, and ErrInvalidOption for unknown options. On success
	// the tally increment and the voter-set insert are applied atomically.
	CastVote(ctx context.Context, postId int64, userId string, option string, now time.Time) (tally map[string]int, err error)
	GetPoll(ctx context.Context, postId int64, opts *PostQueryOpts) (*model.Poll, error)
}

type UserDatabase interface {
	CreateUser(context.Context, *model.User) error
	// GetUser returns (nil, nil) when no profile exists
	GetUser(context.Context, string) (*model.User, error)
	GetUsers(ctx context.Context) ([]*model.User, error)
}
